package handlers

import (
	"errors"
	"log"

	"social-reward-system/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// writeError maps a service error onto an HTTP response. Domain kinds are
// user-facing outcomes with machine-readable codes; anything without a kind
// is a subsystem fault and stays opaque.
func writeError(c *fiber.Ctx, err error) error {
	kind := services.KindOf(err)
	if kind == "" {
		log.Printf("[HTTP] internal error on %s: %v", c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "service error, try again later",
		})
	}

	status := fiber.StatusBadRequest
	switch kind {
	case services.KindInvalidAccount:
		status = fiber.StatusForbidden
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindAlreadyLinked,
		services.KindAlreadyClaimedByOther,
		services.KindCooldownActive,
		services.KindDuplicateProof,
		services.KindAlreadySubmittedToday,
		services.KindInvalidDecision:
		status = fiber.StatusConflict
	case services.KindVerificationUnavailable:
		status = fiber.StatusServiceUnavailable
	}

	var de *services.DomainError
	errors.As(err, &de)
	return c.Status(status).JSON(fiber.Map{
		"code":  kind,
		"error": de.Message,
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
