package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"board/internal/modules/board/domain"
)

type MemoRepo struct{ db *pgxpool.Pool }

func NewMemoRepo(db *pgxpool.Pool) *MemoRepo { return &MemoRepo{db: db} }

const memoCols = `id, user_id, body, created_at, updated_at`

func scanMemo(row interface{ Scan(dest ...any) error }) (*domain.Memo, error) {
	var m domain.Memo
	if err := row.Scan(&m.ID, &m.UserID, &m.Body, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemoRepo) Create(m domain.Memo) (*domain.Memo, error) {
	row := r.db.QueryRow(context.Background(), `
INSERT INTO memos (user_id, body)
VALUES ($1, $2)
RETURNING `+memoCols, m.UserID, m.Body)
	return scanMemo(row)
}

func (r *MemoRepo) ListByUser(userID string) ([]domain.Memo, error) {
	rows, err := r.db.Query(context.Background(),
		`SELECT `+memoCols+` FROM memos WHERE user_id=$1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Memo{}
	for rows.Next() {
		m, err := scanMemo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MemoRepo) Update(id, userID string, body string) (*domain.Memo, error) {
	row := r.db.QueryRow(context.Background(), `
UPDATE memos SET body=$3, updated_at=now()
WHERE id=$1 AND user_id=$2
RETURNING `+memoCols, id, userID, body)
	return scanMemo(row)
}

func (r *MemoRepo) Delete(id, userID string) error {
	_, err := r.db.Exec(context.Background(),
		`DELETE FROM memos WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}
