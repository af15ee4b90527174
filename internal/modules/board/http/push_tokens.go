package http

import (
	"github.com/gofiber/fiber/v2"

	"board/internal/modules/board/domain"
)

type registerPushTokenReq struct {
	Token    string `json:"token" validate:"required,min=8,max=4096"`
	Platform string `json:"platform" validate:"required,oneof=ios android"`
}

func RegisterPushTokenHandler(tokens domain.PushTokenRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var req registerPushTokenReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return validationError(c, err)
		}

		if err := tokens.Save(domain.PushToken{
			UserID:   userID,
			Token:    req.Token,
			Platform: req.Platform,
		}); err != nil {
			return serverError(c, "Could not register push token")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Push token registered"})
	}
}

func DeletePushTokenHandler(tokens domain.PushTokenRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := tokens.Delete(c.Params("token")); err != nil {
			return notFound(c, "Push token not found")
		}
		return c.JSON(fiber.Map{"message": "Push token removed"})
	}
}
