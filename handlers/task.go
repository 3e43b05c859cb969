package handlers

import (
	"social-reward-system/middleware"
	"social-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupTaskRoutes wires the daily task listing and submission endpoints.
func SetupTaskRoutes(app *fiber.App, tasks *services.TaskService, submissions *services.SubmissionService) {
	group := app.Group("/tasks", middleware.UserContextMiddleware())

	group.Get("/daily", func(c *fiber.Ctx) error {
		list, err := tasks.DailyTasks(c.UserContext(), userID(c), c.Query("account_id"))
		if err != nil {
			return writeError(c, err)
		}
		completed := 0
		for _, t := range list {
			if t.IsCompleted {
				completed++
			}
		}
		return c.JSON(fiber.Map{
			"tasks":           list,
			"completed_count": completed,
			"total_count":     len(list),
		})
	})

	group.Post("/submit", func(c *fiber.Ctx) error {
		var req struct {
			TaskID    string `json:"task_id" validate:"required,uuid"`
			AccountID string `json:"account_id" validate:"required,uuid"`
			ProofLink string `json:"proof_link" validate:"required,url"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		submission, err := submissions.Submit(c.UserContext(), userID(c), req.TaskID, req.AccountID, req.ProofLink)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":    "Task submitted successfully",
			"submission": submission,
		})
	})

	group.Get("/history", func(c *fiber.Ctx) error {
		history, err := submissions.History(c.UserContext(), userID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"history": history})
	})
}
