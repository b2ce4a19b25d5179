// Package session issues and validates dashboard sessions. A session is an
// HMAC-signed JWT whose id is also held server-side, so logout can revoke a
// token before it expires.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie. The name predates this service and is
// shared with the dashboard frontend.
const CookieName = "dental_auth"

// ErrInvalidSession covers expired, malformed, and revoked tokens.
var ErrInvalidSession = errors.New("session: invalid session")

// Store persists session ids for revocation checks.
type Store interface {
	Save(ctx context.Context, id string, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context, id string) error
}

// Service issues, validates, and revokes sessions.
type Service struct {
	store       Store
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewService creates a session service. ttl applies to plain logins,
// rememberTTL to logins with the remember flag set.
func NewService(store Store, secret string, ttl, rememberTTL time.Duration) *Service {
	return &Service{
		store:       store,
		secret:      []byte(secret),
		ttl:         ttl,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

// Session is an issued session token and its lifetime.
type Session struct {
	Token    string
	ID       string
	TTL      time.Duration
	Remember bool
}

// Issue creates a session for the given subject and registers its id in the
// store.
func (s *Service) Issue(ctx context.Context, subject string, remember bool) (Session, error) {
	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}

	id := uuid.NewString()
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("session: sign token: %w", err)
	}
	if err := s.store.Save(ctx, id, ttl); err != nil {
		return Session{}, fmt.Errorf("session: register session: %w", err)
	}

	return Session{Token: token, ID: id, TTL: ttl, Remember: remember}, nil
}

// Validate parses the token and checks that the session id has not been
// revoked. It returns the subject on success.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSession
	}

	ok, err := s.store.Exists(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("session: revocation check: %w", err)
	}
	if !ok {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// Revoke invalidates the session behind the token. Malformed tokens are a
// no-op; logout must always succeed.
func (s *Service) Revoke(ctx context.Context, token string) error {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.ID == "" {
		return nil
	}
	if err := s.store.Clear(ctx, claims.ID); err != nil {
		return fmt.Errorf("session: clear session: %w", err)
	}
	return nil
}
