package domain

import "time"

// Memo is a private note a user keeps for themselves in the app.
type Memo struct {
	ID        string
	UserID    string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MemoRepo interface {
	Create(m Memo) (*Memo, error)
	ListByUser(userID string) ([]Memo, error)
	Update(id, userID string, body string) (*Memo, error)
	Delete(id, userID string) error
}
