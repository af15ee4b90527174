package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"board/internal/modules/auth/domain"
	"board/internal/modules/auth/service"
)

type signUpReq struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8,max=50"`
	FirstName        string `json:"first_name" validate:"required,min=2,max=50"`
	LastName         string `json:"last_name" validate:"required,min=2,max=50"`
	Role             string `json:"role" validate:"required,oneof=parent teacher staff"`
	Method           string `json:"method" validate:"omitempty,oneof=email sms"`
	Phone            string `json:"phone" validate:"omitempty"`
	PrivacyAgreement bool   `json:"privacy_agreement" validate:"eq=true"`
}

var validate = validator.New()

type signUpResp struct {
	Message           string `json:"message"`
	UserID            string `json:"user_id"`
	ChallengeID       string `json:"challenge_id,omitempty"`
	Method            string `json:"method"`
	MaskedDestination string `json:"masked_destination,omitempty"`
	DebugCode         string `json:"debug_code,omitempty"`
}

func SignUpHandler(signup *service.Signup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signUpReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Malformed request body",
			})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "VALIDATION_ERROR",
				"message":    err.Error(),
			})
		}

		res, err := signup.Begin(c.Context(), service.BeginParams{
			Email:       req.Email,
			Password:    req.Password,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Role:        domain.Role(req.Role),
			Method:      req.Method,
			Destination: req.Phone,
		})
		if err != nil {
			return signupError(c, err)
		}

		msg := "Account created. Enter the code we sent to finish signing up"
		if !res.RequiresVerification {
			msg = "Account created"
		}
		return c.Status(fiber.StatusCreated).JSON(signUpResp{
			Message:           msg,
			UserID:            res.UserID,
			ChallengeID:       res.ChallengeID,
			Method:            string(res.Method),
			MaskedDestination: res.MaskedDestination,
			DebugCode:         res.DebugCode,
		})
	}
}

func signupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidDestination):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error_code": "INVALID_DESTINATION",
			"message":    "Destination does not match the chosen method",
		})
	case errors.Is(err, service.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error_code": "EMAIL_TAKEN",
			"message":    "Email already registered",
		})
	case errors.Is(err, service.ErrChannelNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error_code": "CHANNEL_NOT_CONFIGURED",
			"message":    "Verification channel is not available",
		})
	case errors.Is(err, service.ErrDeliveryFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error_code": "DELIVERY_FAILED",
			"message":    "Could not send the verification code. Try again later",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error_code": "SERVER_ERROR",
			"message":    "Could not sign up",
		})
	}
}
