package handlers

import (
	"social-reward-system/middleware"
	"social-reward-system/models"
	"social-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes wires the operator endpoints: batch uploads, submission
// review and settings. All of them require the admin role from the gateway.
func SetupAdminRoutes(app *fiber.App, tasks *services.TaskService, review *services.ReviewService) {
	group := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	group.Post("/tasks/batch", func(c *fiber.Ctx) error {
		var req struct {
			Tasks []services.TaskSpec `json:"tasks" validate:"required,min=1,dive"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		created, err := tasks.CreateDailyBatch(c.UserContext(), req.Tasks)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "batch created",
			"tasks":   created,
		})
	})

	group.Get("/tasks", func(c *fiber.Ctx) error {
		list, err := tasks.TasksByDate(c.UserContext(), c.Query("date"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"tasks": list})
	})

	group.Patch("/tasks/:id", func(c *fiber.Ctx) error {
		var req struct {
			Title        *string  `json:"title"`
			VideoURL     *string  `json:"video_url"`
			Caption      *string  `json:"caption"`
			RewardAmount *float64 `json:"reward_amount"`
			Active       *bool    `json:"active"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.VideoURL != nil {
			updates["video_url"] = *req.VideoURL
		}
		if req.Caption != nil {
			updates["caption"] = *req.Caption
		}
		if req.RewardAmount != nil {
			updates["reward_amount"] = *req.RewardAmount
		}
		if req.Active != nil {
			updates["active"] = *req.Active
		}

		task, err := tasks.UpdateTask(c.UserContext(), c.Params("id"), updates)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"message": "task updated", "task": task})
	})

	group.Get("/submissions", func(c *fiber.Ctx) error {
		list, err := review.ListByStatus(c.UserContext(), models.SubmissionStatus(c.Query("status")))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"submissions": list})
	})

	group.Post("/submissions/decide", func(c *fiber.Ctx) error {
		var req struct {
			SubmissionID string `json:"submission_id" validate:"required,uuid"`
			Decision     string `json:"decision" validate:"required,oneof=Approved Rejected"`
			AdminComment string `json:"admin_comment"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		submission, err := review.Decide(c.UserContext(), req.SubmissionID,
			models.SubmissionStatus(req.Decision), req.AdminComment)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":    "Submission " + req.Decision,
			"submission": submission,
		})
	})

	group.Post("/settings", func(c *fiber.Ctx) error {
		var req struct {
			Key   string `json:"key" validate:"required"`
			Value string `json:"value" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if err := tasks.UpsertSetting(c.UserContext(), req.Key, req.Value); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"message": "setting updated"})
	})
}
