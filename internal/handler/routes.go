package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	taskHandler *TaskHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authMiddleware, authHandler.Logout)
	auth.Get("/me", authMiddleware, authHandler.Me)
	auth.Post("/refresh", authMiddleware, authHandler.Refresh)

	// User routes (registration is public, the rest requires a session)
	users := api.Group("/users")
	users.Post("/", userHandler.Register)
	users.Get("/:id", authMiddleware, userHandler.GetProfile)
	users.Patch("/:id", authMiddleware, userHandler.Update)
	users.Delete("/:id", authMiddleware, userHandler.Delete)

	// Task routes (all protected)
	tasks := api.Group("/tasks", authMiddleware)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Patch("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
}
