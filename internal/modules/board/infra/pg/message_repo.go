package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"board/internal/modules/board/domain"
)

type MessageRepo struct{ db *pgxpool.Pool }

func NewMessageRepo(db *pgxpool.Pool) *MessageRepo { return &MessageRepo{db: db} }

const messageCols = `id, sender_id, recipient_id, body, created_at, read_at`

func scanMessage(row interface{ Scan(dest ...any) error }) (*domain.Message, error) {
	var m domain.Message
	if err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.CreatedAt, &m.ReadAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepo) Create(m domain.Message) (*domain.Message, error) {
	row := r.db.QueryRow(context.Background(), `
INSERT INTO messages (sender_id, recipient_id, body)
VALUES ($1, $2, $3)
RETURNING `+messageCols, m.SenderID, m.RecipientID, m.Body)
	return scanMessage(row)
}

func (r *MessageRepo) ListConversation(a, b string, page, limit int) ([]domain.Message, int, error) {
	ctx := context.Background()
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	cond := `(sender_id=$1 AND recipient_id=$2) OR (sender_id=$2 AND recipient_id=$1)`
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE `+cond, a, b).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+messageCols+` FROM messages WHERE `+cond+`
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		a, b, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []domain.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	return out, total, rows.Err()
}

func (r *MessageRepo) MarkRead(id, recipientID string) error {
	_, err := r.db.Exec(context.Background(),
		`UPDATE messages SET read_at=now() WHERE id=$1 AND recipient_id=$2 AND read_at IS NULL`,
		id, recipientID)
	return err
}
