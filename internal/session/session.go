// Package session keeps the signed-in user's access token for the lifetime
// of the client process.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed access token")

type Store interface {
	Token() string
	Save(token string)
	Clear()
}

type memoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *memoryStore) Save(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *memoryStore) Clear() {
	s.Save("")
}

// Claims are the access-token fields the storefront reads locally.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID is the auth user id carried in the subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}

func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// ParseClaims decodes the token payload without verifying its signature.
// The backend verifies every request; this is only used to read the subject
// and expiry without a round trip.
func ParseClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}
	return claims, nil
}
