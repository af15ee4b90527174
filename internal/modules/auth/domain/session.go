package domain

import "time"

type Session struct {
	ID               string
	UserID           string
	RefreshTokenHash string
	DeviceName       *string
	IPAddress        *string
	UserAgent        *string
	LastActive       time.Time
	CreatedAt        time.Time
	RevokedAt        *time.Time
	ExpiresAt        time.Time
}

type SessionRepo interface {
	Create(s Session) (*Session, error)
	FindByRefreshHash(hash string) (*Session, error)
	Revoke(sessionID, userID string) error
	RevokeAll(userID string) (int, error)
}
