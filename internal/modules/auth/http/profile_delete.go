package http

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"board/internal/modules/auth/domain"
)

// DeleteUserHandler removes the account and revokes every session it has.
func DeleteUserHandler(userRepo domain.UserRepo, sessions domain.SessionRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		if _, err := sessions.RevokeAll(userID); err != nil {
			log.Printf("auth: revoking sessions for %s: %v", userID, err)
		}
		if err := userRepo.Delete(userID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Could not delete account",
			})
		}
		return c.JSON(fiber.Map{"message": "Account deleted"})
	}
}
