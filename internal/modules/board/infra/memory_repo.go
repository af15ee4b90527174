package infra

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"board/internal/modules/board/domain"
)

var ErrNotFound = errors.New("not found")

type memPostRepo struct {
	mu    sync.RWMutex
	posts map[string]*domain.Post
	order []string // insertion order, newest last
}

func NewMemPostRepo() domain.PostRepo {
	return &memPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *memPostRepo) Create(p domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.New().String()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := p
	r.posts[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return &cp, nil
}

func (r *memPostRepo) GetByID(id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) List(page, limit int) ([]domain.Post, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.order)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	// newest first
	ids := make([]string, total)
	for i, id := range r.order {
		ids[total-1-i] = id
	}
	start := (page - 1) * limit
	if start >= total {
		return []domain.Post{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	out := make([]domain.Post, 0, end-start)
	for _, id := range ids[start:end] {
		out = append(out, *r.posts[id])
	}
	return out, total, nil
}

func (r *memPostRepo) Update(id, authorID string, title, body *string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.AuthorID != authorID {
		return nil, ErrNotFound
	}
	if title != nil {
		p.Title = *title
	}
	if body != nil {
		p.Body = *body
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) Delete(id, authorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.AuthorID != authorID {
		return ErrNotFound
	}
	delete(r.posts, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type memCommentRepo struct {
	mu       sync.RWMutex
	comments map[string]*domain.Comment
}

func NewMemCommentRepo() domain.CommentRepo {
	return &memCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *memCommentRepo) Create(c domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()
	cp := c
	r.comments[c.ID] = &cp
	return &cp, nil
}

func (r *memCommentRepo) ListByPost(postID string) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memCommentRepo) Delete(id, authorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok || c.AuthorID != authorID {
		return ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

type memMemoRepo struct {
	mu    sync.RWMutex
	memos map[string]*domain.Memo
}

func NewMemMemoRepo() domain.MemoRepo {
	return &memMemoRepo{memos: make(map[string]*domain.Memo)}
}

func (r *memMemoRepo) Create(m domain.Memo) (*domain.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New().String()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	cp := m
	r.memos[m.ID] = &cp
	return &cp, nil
}

func (r *memMemoRepo) ListByUser(userID string) ([]domain.Memo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Memo{}
	for _, m := range r.memos {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memMemoRepo) Update(id, userID string, body string) (*domain.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memos[id]
	if !ok || m.UserID != userID {
		return nil, ErrNotFound
	}
	m.Body = body
	m.UpdatedAt = time.Now().UTC()
	cp := *m
	return &cp, nil
}

func (r *memMemoRepo) Delete(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memos[id]
	if !ok || m.UserID != userID {
		return ErrNotFound
	}
	delete(r.memos, id)
	return nil
}

type memMessageRepo struct {
	mu       sync.RWMutex
	messages map[string]*domain.Message
	order    []string
}

func NewMemMessageRepo() domain.MessageRepo {
	return &memMessageRepo{messages: make(map[string]*domain.Message)}
}

func (r *memMessageRepo) Create(m domain.Message) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()
	cp := m
	r.messages[m.ID] = &cp
	r.order = append(r.order, m.ID)
	return &cp, nil
}

func (r *memMessageRepo) ListConversation(a, b string, page, limit int) ([]domain.Message, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	var conv []domain.Message
	for i := len(r.order) - 1; i >= 0; i-- {
		m := r.messages[r.order[i]]
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			conv = append(conv, *m)
		}
	}
	total := len(conv)
	start := (page - 1) * limit
	if start >= total {
		return []domain.Message{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return conv[start:end], total, nil
}

func (r *memMessageRepo) MarkRead(id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok || m.RecipientID != recipientID {
		return ErrNotFound
	}
	if m.ReadAt == nil {
		now := time.Now().UTC()
		m.ReadAt = &now
	}
	return nil
}

type memPushTokenRepo struct {
	mu     sync.RWMutex
	tokens map[string]*domain.PushToken // token -> registration
}

func NewMemPushTokenRepo() domain.PushTokenRepo {
	return &memPushTokenRepo{tokens: make(map[string]*domain.PushToken)}
}

func (r *memPushTokenRepo) Save(t domain.PushToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.CreatedAt = time.Now().UTC()
	cp := t
	r.tokens[t.Token] = &cp
	return nil
}

func (r *memPushTokenRepo) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *memPushTokenRepo) ListByUser(userID string) ([]domain.PushToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.PushToken{}
	for _, t := range r.tokens {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}
