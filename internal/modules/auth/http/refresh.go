package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"board/internal/modules/auth/domain"
	"board/internal/platform/security"
)

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
	DeviceName   string `json:"device_name"`
}

// RefreshHandler rotates the refresh token: the presented session is revoked
// and a fresh one issued in its place.
func RefreshHandler(sessions domain.SessionRepo, userRepo domain.UserRepo, jwtMgr *security.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req refreshReq
		if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "refresh_token is required",
			})
		}

		s, err := sessions.FindByRefreshHash(security.HashToken(req.RefreshToken))
		if err != nil || s == nil || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "INVALID_REFRESH",
				"message":    "Invalid or expired refresh token",
			})
		}
		_ = sessions.Revoke(s.ID, s.UserID)

		rt, err := security.IssueRefresh()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR", "message": "Could not create refresh token",
			})
		}
		ip := c.IP()
		ua := c.Get("User-Agent")
		dev := req.DeviceName
		newSess, err := sessions.Create(domain.Session{
			UserID:           s.UserID,
			RefreshTokenHash: security.HashToken(rt),
			DeviceName:       &dev,
			IPAddress:        &ip,
			UserAgent:        &ua,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR", "message": "Could not create session",
			})
		}

		u, err := userRepo.GetByID(s.UserID)
		if err != nil || u == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR", "message": "Could not load user",
			})
		}
		at, exp, err := jwtMgr.IssueAccess(s.UserID, string(u.Role), newSess.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR", "message": "Could not create access token",
			})
		}
		return c.JSON(fiber.Map{
			"message":       "Tokens refreshed",
			"access_token":  at,
			"refresh_token": rt,
			"expires_at":    exp.UTC().Format(time.RFC3339),
		})
	}
}
