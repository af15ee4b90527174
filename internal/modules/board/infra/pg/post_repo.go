package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"board/internal/modules/board/domain"
)

type PostRepo struct{ db *pgxpool.Pool }

func NewPostRepo(db *pgxpool.Pool) *PostRepo { return &PostRepo{db: db} }

const postCols = `id, author_id, title, body, created_at, updated_at`

func scanPost(row interface{ Scan(dest ...any) error }) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) Create(p domain.Post) (*domain.Post, error) {
	row := r.db.QueryRow(context.Background(), `
INSERT INTO posts (author_id, title, body)
VALUES ($1, $2, $3)
RETURNING `+postCols, p.AuthorID, p.Title, p.Body)
	return scanPost(row)
}

func (r *PostRepo) GetByID(id string) (*domain.Post, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT `+postCols+` FROM posts WHERE id=$1`, id)
	return scanPost(row)
}

func (r *PostRepo) List(page, limit int) ([]domain.Post, int, error) {
	ctx := context.Background()
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+postCols+` FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *PostRepo) Update(id, authorID string, title, body *string) (*domain.Post, error) {
	row := r.db.QueryRow(context.Background(), `
UPDATE posts SET
  title = COALESCE($3, title),
  body  = COALESCE($4, body),
  updated_at = now()
WHERE id=$1 AND author_id=$2
RETURNING `+postCols, id, authorID, title, body)
	return scanPost(row)
}

func (r *PostRepo) Delete(id, authorID string) error {
	_, err := r.db.Exec(context.Background(),
		`DELETE FROM posts WHERE id=$1 AND author_id=$2`, id, authorID)
	return err
}
