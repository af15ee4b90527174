package http

import (
	"github.com/gofiber/fiber/v2"

	"board/internal/modules/auth/domain"
)

type profileResp struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Role           string  `json:"role"`
	EmailConfirmed bool    `json:"email_confirmed"`
	PhoneConfirmed bool    `json:"phone_confirmed"`
}

func GetProfileHandler(userRepo domain.UserRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		u, err := userRepo.GetByID(userID)
		if err != nil || u == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error_code": "NOT_FOUND",
				"message":    "User not found",
			})
		}
		return c.JSON(profileResp{
			ID:             u.ID,
			Email:          u.Email,
			Phone:          u.Phone,
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			Role:           string(u.Role),
			EmailConfirmed: u.EmailConfirmed,
			PhoneConfirmed: u.PhoneConfirmed,
		})
	}
}
