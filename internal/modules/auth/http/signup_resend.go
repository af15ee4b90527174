package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"board/internal/modules/auth/challenge"
	"board/internal/modules/auth/service"
)

type resendReq struct {
	ChallengeID string `json:"challenge_id"`
}

type resendResp struct {
	Message           string `json:"message"`
	Method            string `json:"method"`
	MaskedDestination string `json:"masked_destination"`
	DebugCode         string `json:"debug_code,omitempty"`
}

func SignUpResendHandler(signup *service.Signup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resendReq
		if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.ChallengeID) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "challenge_id is required",
			})
		}

		res, err := signup.Resend(c.Context(), strings.TrimSpace(req.ChallengeID))
		if err != nil {
			var rl *challenge.RateLimitedError
			switch {
			case errors.As(err, &rl):
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error_code":  "RATE_LIMIT_EXCEEDED",
					"message":     "Too many resend requests. Try again later",
					"retry_after": rl.RetryAfter,
				})
			case errors.Is(err, challenge.ErrNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error_code": "NOT_FOUND",
					"message":    "No pending verification for this id",
				})
			case errors.Is(err, service.ErrDeliveryFailed):
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
					"error_code": "DELIVERY_FAILED",
					"message":    "Could not send the verification code. Try again later",
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error_code": "SERVER_ERROR",
					"message":    "Could not resend the code",
				})
			}
		}
		return c.JSON(resendResp{
			Message:           "Verification code sent again",
			Method:            string(res.Method),
			MaskedDestination: res.MaskedDestination,
			DebugCode:         res.DebugCode,
		})
	}
}
