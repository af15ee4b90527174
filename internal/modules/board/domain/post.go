package domain

import "time"

type Post struct {
	ID        string
	AuthorID  string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}

type PostRepo interface {
	Create(p Post) (*Post, error)
	GetByID(id string) (*Post, error)
	List(page, limit int) ([]Post, int, error)
	Update(id, authorID string, title, body *string) (*Post, error)
	Delete(id, authorID string) error
}

type CommentRepo interface {
	Create(c Comment) (*Comment, error)
	ListByPost(postID string) ([]Comment, error)
	Delete(id, authorID string) error
}
