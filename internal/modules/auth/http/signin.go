package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"board/internal/modules/auth/domain"
	"board/internal/platform/security"
)

type signInReq struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	DeviceName string `json:"device_name"`
}

type signInResp struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

func SignInHandler(userRepo domain.UserRepo, sessions domain.SessionRepo, jwtMgr *security.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signInReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Malformed request body",
			})
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		u, err := userRepo.GetByEmail(req.Email)
		if err != nil || u == nil || u.PasswordHash == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_CREDENTIALS",
				"message":    "Incorrect email or password",
			})
		}
		if u.IsBlocked {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error_code": "ACCOUNT_BLOCKED",
				"message":    "Account is blocked",
			})
		}
		if !u.EmailConfirmed && !u.PhoneConfirmed {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "NOT_CONFIRMED",
				"message":    "Finish signup verification first",
			})
		}
		ok, _ := security.CheckPassword(*u.PasswordHash, req.Password)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_CREDENTIALS",
				"message":    "Incorrect email or password",
			})
		}

		rt, err := security.IssueRefresh()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Could not create refresh token",
			})
		}
		ip := c.IP()
		ua := c.Get("User-Agent")
		dev := req.DeviceName
		sess, err := sessions.Create(domain.Session{
			UserID:           u.ID,
			RefreshTokenHash: security.HashToken(rt),
			DeviceName:       &dev,
			IPAddress:        &ip,
			UserAgent:        &ua,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Could not create session",
			})
		}
		at, exp, err := jwtMgr.IssueAccess(u.ID, string(u.Role), sess.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Could not create access token",
			})
		}
		return c.JSON(signInResp{
			Message:      "Signed in",
			AccessToken:  at,
			RefreshToken: rt,
			ExpiresAt:    exp.UTC().Format(time.RFC3339),
		})
	}
}
