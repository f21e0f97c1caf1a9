// Package session implements server-validated login sessions. The cookie
// carries only a random session ID; everything else lives in the store and
// expires with its TTL.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrNotFound is returned when a session ID is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session is the server-side state bound to one login.
type Session struct {
	UserID    string `json:"uid"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Store persists sessions for their TTL.
type Store interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// memoryStore is the in-process implementation, backed by a TTL cache.
type memoryStore struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewMemoryStore creates a session store that lives inside the process.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		c:   cache.New(ttl, 2*ttl),
		ttl: ttl,
	}
}

func (s *memoryStore) Create(_ context.Context, userID string) (string, error) {
	id := uuid.NewString()
	now := time.Now()
	s.c.Set(id, Session{
		UserID:    userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}, s.ttl)
	return id, nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	v, found := s.c.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	sess := v.(Session)
	return &sess, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.c.Delete(id)
	return nil
}
