package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"board/internal/modules/auth/domain"
)

type SessionRepo struct{ db *pgxpool.Pool }

func NewSessionRepo(db *pgxpool.Pool) *SessionRepo { return &SessionRepo{db: db} }

const sessionCols = `id, user_id, refresh_token_hash, device_name, ip_address, user_agent,
       last_active, created_at, revoked_at, expires_at`

func scanSession(row interface{ Scan(dest ...any) error }) (*domain.Session, error) {
	var s domain.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.RefreshTokenHash, &s.DeviceName, &s.IPAddress,
		&s.UserAgent, &s.LastActive, &s.CreatedAt, &s.RevokedAt, &s.ExpiresAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) Create(s domain.Session) (*domain.Session, error) {
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = time.Now().Add(30 * 24 * time.Hour)
	}
	q := `
INSERT INTO sessions (user_id, refresh_token_hash, device_name, ip_address, user_agent, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + sessionCols
	row := r.db.QueryRow(context.Background(), q,
		s.UserID, s.RefreshTokenHash, s.DeviceName, s.IPAddress, s.UserAgent, s.ExpiresAt)
	return scanSession(row)
}

func (r *SessionRepo) FindByRefreshHash(hash string) (*domain.Session, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+sessionCols+` FROM sessions WHERE refresh_token_hash=$1`, hash)
	return scanSession(row)
}

func (r *SessionRepo) Revoke(sessionID, userID string) error {
	_, err := r.db.Exec(context.Background(),
		`UPDATE sessions SET revoked_at=now() WHERE id=$1 AND user_id=$2 AND revoked_at IS NULL`,
		sessionID, userID)
	return err
}

func (r *SessionRepo) RevokeAll(userID string) (int, error) {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE sessions SET revoked_at=now() WHERE user_id=$1 AND revoked_at IS NULL`, userID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
