package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"board/internal/modules/auth/challenge"
	"board/internal/modules/auth/service"
)

type verifyReq struct {
	ChallengeID string `json:"challenge_id"`
	Code        string `json:"code"`
}

type verifyResp struct {
	Message      string `json:"message"`
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

func SignUpVerifyHandler(signup *service.Signup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Malformed request body",
			})
		}
		req.ChallengeID = strings.TrimSpace(req.ChallengeID)
		if req.ChallengeID == "" || strings.TrimSpace(req.Code) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "challenge_id and code are required",
			})
		}

		res, err := signup.Verify(c.Context(), req.ChallengeID, req.Code)
		if err != nil {
			return verifyError(c, err)
		}
		return c.JSON(verifyResp{
			Message:      "Account verified",
			UserID:       res.UserID,
			AccessToken:  res.AccessToken,
			RefreshToken: res.RefreshToken,
			ExpiresAt:    res.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}
}

func verifyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, challenge.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error_code": "NOT_FOUND",
			"message":    "No pending verification for this id",
		})
	case errors.Is(err, challenge.ErrExpired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error_code": "CODE_EXPIRED",
			"message":    "Verification code expired",
		})
	case errors.Is(err, challenge.ErrTooManyAttempts):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error_code": "TOO_MANY_ATTEMPTS",
			"message":    "Too many attempts, request a new code",
		})
	case errors.Is(err, challenge.ErrInvalidCode):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error_code": "INVALID_CODE",
			"message":    "Incorrect verification code",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error_code": "SERVER_ERROR",
			"message":    "Could not verify the code",
		})
	}
}
