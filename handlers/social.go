package handlers

import (
	"social-reward-system/middleware"
	"social-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupSocialRoutes wires the account linking endpoints.
func SetupSocialRoutes(app *fiber.App, accounts *services.AccountService) {
	group := app.Group("/social", middleware.UserContextMiddleware())

	group.Post("/code", func(c *fiber.Ctx) error {
		ch, err := accounts.IssueChallenge(c.UserContext(), userID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":    "Code generated",
			"code":       ch.Code,
			"expires_at": ch.ExpiresAt,
		})
	})

	group.Post("/verify", func(c *fiber.Ctx) error {
		var req struct {
			Platform   string `json:"platform" validate:"required"`
			ProfileURL string `json:"profile_url" validate:"required,url"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		account, err := accounts.Claim(c.UserContext(), userID(c), req.Platform, req.ProfileURL)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "Account verified successfully",
			"account": account,
		})
	})

	group.Post("/unlink", func(c *fiber.Ctx) error {
		var req struct {
			AccountID string `json:"account_id" validate:"required,uuid"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if err := accounts.Unlink(c.UserContext(), userID(c), req.AccountID); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Account unlinked"})
	})

	group.Get("/accounts", func(c *fiber.Ctx) error {
		list, err := accounts.ListAccounts(c.UserContext(), userID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"accounts": list})
	})
}
