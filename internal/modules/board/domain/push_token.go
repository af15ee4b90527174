package domain

import "time"

// PushToken is a device registration for mobile push. Dispatching
// notifications is out of scope here; the tokens are only stored.
type PushToken struct {
	UserID    string
	Token     string
	Platform  string // ios | android
	CreatedAt time.Time
}

type PushTokenRepo interface {
	// Save upserts: re-registering the same token moves it to the user.
	Save(t PushToken) error
	Delete(token string) error
	ListByUser(userID string) ([]PushToken, error)
}
