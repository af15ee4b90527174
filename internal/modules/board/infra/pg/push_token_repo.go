package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"board/internal/modules/board/domain"
)

type PushTokenRepo struct{ db *pgxpool.Pool }

func NewPushTokenRepo(db *pgxpool.Pool) *PushTokenRepo { return &PushTokenRepo{db: db} }

func (r *PushTokenRepo) Save(t domain.PushToken) error {
	_, err := r.db.Exec(context.Background(), `
INSERT INTO push_tokens (user_id, token, platform)
VALUES ($1, $2, $3)
ON CONFLICT (token) DO UPDATE SET user_id=EXCLUDED.user_id, platform=EXCLUDED.platform`,
		t.UserID, t.Token, t.Platform)
	return err
}

func (r *PushTokenRepo) Delete(token string) error {
	_, err := r.db.Exec(context.Background(),
		`DELETE FROM push_tokens WHERE token=$1`, token)
	return err
}

func (r *PushTokenRepo) ListByUser(userID string) ([]domain.PushToken, error) {
	rows, err := r.db.Query(context.Background(),
		`SELECT user_id, token, platform, created_at FROM push_tokens WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.PushToken{}
	for rows.Next() {
		var t domain.PushToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.Platform, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
