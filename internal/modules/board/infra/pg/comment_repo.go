package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"board/internal/modules/board/domain"
)

type CommentRepo struct{ db *pgxpool.Pool }

func NewCommentRepo(db *pgxpool.Pool) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(c domain.Comment) (*domain.Comment, error) {
	row := r.db.QueryRow(context.Background(), `
INSERT INTO comments (post_id, author_id, body)
VALUES ($1, $2, $3)
RETURNING id, post_id, author_id, body, created_at`,
		c.PostID, c.AuthorID, c.Body)
	var out domain.Comment
	if err := row.Scan(&out.ID, &out.PostID, &out.AuthorID, &out.Body, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CommentRepo) ListByPost(postID string) ([]domain.Comment, error) {
	rows, err := r.db.Query(context.Background(), `
SELECT id, post_id, author_id, body, created_at
FROM comments WHERE post_id=$1 ORDER BY created_at ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepo) Delete(id, authorID string) error {
	_, err := r.db.Exec(context.Background(),
		`DELETE FROM comments WHERE id=$1 AND author_id=$2`, id, authorID)
	return err
}
