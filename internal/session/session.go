// Package session gates access to protected screens with a short-lived local
// marker. The marker is an HS256-signed token kept in client storage; it
// carries no server-side meaning and is only as trustworthy as the local
// storage itself.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/facekeeper/internal/clientstore"
)

// DefaultTTL is the session lifetime created on successful registration or
// sign-in.
const DefaultTTL = 24 * time.Hour

// Session is the decoded authenticated marker.
type Session struct {
	SubjectEmail string
	ExpiresAt    time.Time
}

// Store persists and validates the session token.
type Store struct {
	storage clientstore.Store
	secret  []byte
}

func NewStore(storage clientstore.Store, secret []byte) *Store {
	return &Store{storage: storage, secret: secret}
}

// Set creates a session for email that expires after ttl.
func (s *Store) Set(ctx context.Context, email string, ttl time.Duration) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	return s.storage.Set(ctx, clientstore.KeySession, []byte(signed))
}

// Get returns the active session, or nil when none exists. An expired or
// malformed token is cleared from storage and also reads as nil: absence is
// a value here, not an error. Errors are reserved for storage failures.
func (s *Store) Get(ctx context.Context) (*Session, error) {
	raw, err := s.storage.Get(ctx, clientstore.KeySession)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(string(raw), claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.ExpiresAt == nil {
		if clearErr := s.storage.Delete(ctx, clientstore.KeySession); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}

	return &Session{
		SubjectEmail: claims.Subject,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// Clear removes the session (explicit sign-out).
func (s *Store) Clear(ctx context.Context) error {
	return s.storage.Delete(ctx, clientstore.KeySession)
}
