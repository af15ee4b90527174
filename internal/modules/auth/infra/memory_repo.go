package infra

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"board/internal/modules/auth/domain"
)

var ErrNotFound = errors.New("not found")

type memUserRepo struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
}

// NewMemUserRepo backs the auth module with process memory. Dev and tests.
func NewMemUserRepo() domain.UserRepo {
	return &memUserRepo{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *memUserRepo) Create(p domain.CreateUserParams) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[p.Email]; ok {
		return nil, errors.New("email_taken")
	}
	id := uuid.New().String()
	now := time.Now().UTC()
	u := &domain.User{
		ID: id, Email: p.Email, Phone: p.Phone, FirstName: p.FirstName, LastName: p.LastName,
		Role: p.Role, PasswordHash: p.PasswordHash, CreatedAt: now, UpdatedAt: now,
	}
	r.users[id] = u
	r.byEmail[p.Email] = id
	return u, nil
}

func (r *memUserRepo) GetByID(id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return r.users[id], nil
}

func (r *memUserRepo) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (r *memUserRepo) ConfirmEmail(userID string) error {
	return r.update(userID, func(u *domain.User) { u.EmailConfirmed = true })
}

func (r *memUserRepo) ConfirmPhone(userID string) error {
	return r.update(userID, func(u *domain.User) { u.PhoneConfirmed = true })
}

func (r *memUserRepo) UpdateProfile(userID string, firstName, lastName, phone *string) error {
	return r.update(userID, func(u *domain.User) {
		if firstName != nil {
			u.FirstName = strings.TrimSpace(*firstName)
		}
		if lastName != nil {
			u.LastName = strings.TrimSpace(*lastName)
		}
		if phone != nil {
			u.Phone = phone
		}
	})
}

func (r *memUserRepo) UpdatePassword(userID string, newHash string) error {
	return r.update(userID, func(u *domain.User) { u.PasswordHash = &newHash })
}

func (r *memUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	delete(r.byEmail, u.Email)
	return nil
}

func (r *memUserRepo) update(userID string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

type memSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	byUser   map[string][]string
}

func NewMemSessionRepo() domain.SessionRepo {
	return &memSessionRepo{
		sessions: make(map[string]*domain.Session),
		byUser:   make(map[string][]string),
	}
}

func (r *memSessionRepo) Create(s domain.Session) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.LastActive = now
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = now.Add(30 * 24 * time.Hour)
	}
	cp := s
	r.sessions[s.ID] = &cp
	r.byUser[s.UserID] = append(r.byUser[s.UserID], s.ID)
	return &cp, nil
}

func (r *memSessionRepo) FindByRefreshHash(hash string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		if s.RefreshTokenHash == hash {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memSessionRepo) Revoke(sessionID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return ErrNotFound
	}
	now := time.Now().UTC()
	s.RevokedAt = &now
	return nil
}

func (r *memSessionRepo) RevokeAll(userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	now := time.Now().UTC()
	for _, id := range r.byUser[userID] {
		if s, ok := r.sessions[id]; ok && s.RevokedAt == nil {
			s.RevokedAt = &now
			count++
		}
	}
	return count, nil
}
