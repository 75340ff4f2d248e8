package service

import (
	"context"
	"errors"

	"github.com/George-lab-star/ToDoListMonolith/internal/domain"
	"github.com/George-lab-star/ToDoListMonolith/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotTaskOwner = errors.New("task belongs to another user")
)

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending completed archived"`
}

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// Create adds a new pending task owned by the given user
func (s *TaskService) Create(ctx context.Context, ownerID int64, req CreateTaskRequest) (*domain.Task, error) {
	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatusPending,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// GetByID retrieves a task, enforcing ownership
func (s *TaskService) GetByID(ctx context.Context, id, requesterID int64) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.OwnerID != requesterID {
		return nil, ErrNotTaskOwner
	}
	return task, nil
}

// ListByOwner returns all tasks owned by a user, newest first
func (s *TaskService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	return s.taskRepo.ListByOwner(ctx, ownerID)
}

// Update applies a partial update to an owned task
func (s *TaskService) Update(ctx context.Context, id, requesterID int64, req UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes an owned task
func (s *TaskService) Delete(ctx context.Context, id, requesterID int64) error {
	if _, err := s.GetByID(ctx, id, requesterID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}
