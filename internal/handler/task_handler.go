package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/George-lab-star/ToDoListMonolith/internal/service"
	"github.com/George-lab-star/ToDoListMonolith/pkg/validator"
)

type TaskHandler struct {
	taskService *service.TaskService
	validator   *validator.Validator
}

func NewTaskHandler(taskService *service.TaskService, validator *validator.Validator) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator,
	}
}

func taskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, service.ErrNotTaskOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "task operation failed",
		})
	}
}

// Create adds a new task for the current user
// POST /api/tasks (protected)
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req service.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	task, err := h.taskService.Create(c.Context(), user.ID, req)
	if err != nil {
		return taskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// List returns all tasks owned by the current user
// GET /api/tasks (protected)
func (h *TaskHandler) List(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	tasks, err := h.taskService.ListByOwner(c.Context(), user.ID)
	if err != nil {
		return taskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

// Get returns a single task by ID
// GET /api/tasks/:id (protected)
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid task id",
		})
	}

	task, err := h.taskService.GetByID(c.Context(), id, user.ID)
	if err != nil {
		return taskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

// Update applies a partial update to a task
// PATCH /api/tasks/:id (protected)
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid task id",
		})
	}

	var req service.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	task, err := h.taskService.Update(c.Context(), id, user.ID, req)
	if err != nil {
		return taskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

// Delete removes a task
// DELETE /api/tasks/:id (protected)
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid task id",
		})
	}

	if err := h.taskService.Delete(c.Context(), id, user.ID); err != nil {
		return taskError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
