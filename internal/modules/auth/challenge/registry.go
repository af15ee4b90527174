package challenge

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"board/internal/platform/notify"
)

var (
	ErrNotFound        = errors.New("challenge not found")
	ErrExpired         = errors.New("code expired")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrInvalidCode     = errors.New("invalid code")
)

// RateLimitedError reports that a resend came inside the cooldown window.
type RateLimitedError struct {
	RetryAfter int // whole seconds, rounded up
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfter)
}

type challenge struct {
	id          string
	userID      string
	method      notify.Method
	destination string
	code        string
	expiresAt   time.Time
	attempts    int
	lastSentAt  time.Time
}

// Issued is what a create or resend hands back to the caller so it can
// attempt delivery. The code leaves this package only through Issued.
type Issued struct {
	ID          string
	Code        string
	ExpiresAt   time.Time
	Method      notify.Method
	Destination string
}

// Receipt identifies the account a consumed challenge authorized.
type Receipt struct {
	UserID string
	Method notify.Method
}

// Registry owns all live verification challenges. Challenges live in process
// memory only; a restart discards them and clients start over. One mutex
// guards the map, every operation is a handful of map touches.
type Registry struct {
	mu          sync.Mutex
	challenges  map[string]*challenge
	ttl         time.Duration
	cooldown    time.Duration
	maxAttempts int

	now func() time.Time // swapped out in tests
}

func NewRegistry(ttl, cooldown time.Duration, maxAttempts int) *Registry {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &Registry{
		challenges:  make(map[string]*challenge),
		ttl:         ttl,
		cooldown:    cooldown,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Create registers a fresh challenge for userID. No validation here; the
// destination was vetted by the caller and the gateway re-checks it.
func (r *Registry) Create(userID string, method notify.Method, destination string) (Issued, error) {
	code, err := GenerateCode()
	if err != nil {
		return Issued{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	c := &challenge{
		id:          uuid.New().String(),
		userID:      userID,
		method:      method,
		destination: destination,
		code:        code,
		expiresAt:   now.Add(r.ttl),
		lastSentAt:  now,
	}
	r.challenges[c.id] = c
	return r.issued(c), nil
}

// Resend rotates the code after the cooldown has elapsed, resetting expiry
// and the attempt counter. The caller is responsible for delivering the new
// code (outside this lock).
func (r *Registry) Resend(id string) (Issued, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.challenges[id]
	if !ok {
		return Issued{}, ErrNotFound
	}
	now := r.now()
	if wait := c.lastSentAt.Add(r.cooldown).Sub(now); wait > 0 {
		secs := int((wait + time.Second - 1) / time.Second)
		return Issued{}, &RateLimitedError{RetryAfter: secs}
	}
	code, err := GenerateCode()
	if err != nil {
		return Issued{}, err
	}
	c.code = code
	c.expiresAt = now.Add(r.ttl)
	c.attempts = 0
	c.lastSentAt = now
	return r.issued(c), nil
}

// Consume checks suppliedCode against the challenge and removes it on
// success. The evaluation order is load-bearing: expiry is checked before the
// attempt counter moves, so an expired code burns no attempt, and the
// overflow check runs before the comparison, so the attempt that crosses the
// cap never gets a chance to match.
func (r *Registry) Consume(id, suppliedCode string) (Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.challenges[id]
	if !ok {
		return Receipt{}, ErrNotFound
	}
	if r.now().After(c.expiresAt) {
		delete(r.challenges, id)
		return Receipt{}, ErrExpired
	}
	c.attempts++
	if c.attempts > r.maxAttempts {
		delete(r.challenges, id)
		return Receipt{}, ErrTooManyAttempts
	}
	if strings.TrimSpace(suppliedCode) != c.code {
		return Receipt{}, ErrInvalidCode
	}
	delete(r.challenges, id)
	return Receipt{UserID: c.userID, Method: c.method}, nil
}

// Discard drops a challenge without consuming it. Used by the signup flow to
// roll back after a delivery failure. Unknown ids are a no-op.
func (r *Registry) Discard(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.challenges, id)
}

func (r *Registry) issued(c *challenge) Issued {
	return Issued{
		ID:          c.id,
		Code:        c.code,
		ExpiresAt:   c.expiresAt,
		Method:      c.method,
		Destination: c.destination,
	}
}
