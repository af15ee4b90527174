package domain

import "time"

type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Body        string
	CreatedAt   time.Time
	ReadAt      *time.Time
}

type MessageRepo interface {
	Create(m Message) (*Message, error)
	// ListConversation returns the two-way history between a and b, newest
	// first.
	ListConversation(a, b string, page, limit int) ([]Message, int, error)
	MarkRead(id, recipientID string) error
}
