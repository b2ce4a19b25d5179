package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	return NewService(store, "test-secret", 12*time.Hour, 720*time.Hour), mr
}

func TestIssueAndValidate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Issue(ctx, "admin@dentalspace.com", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if sess.TTL != 12*time.Hour {
		t.Errorf("expected 12h ttl, got %s", sess.TTL)
	}

	subject, err := svc.Validate(ctx, sess.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if subject != "admin@dentalspace.com" {
		t.Errorf("unexpected subject %q", subject)
	}
}

func TestIssue_RememberUsesLongTTL(t *testing.T) {
	svc, _ := newTestService(t)

	sess, err := svc.Issue(context.Background(), "admin@dentalspace.com", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if sess.TTL != 720*time.Hour {
		t.Errorf("expected 720h ttl, got %s", sess.TTL)
	}
}

func TestValidate_RevokedToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Issue(ctx, "admin@dentalspace.com", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := svc.Revoke(ctx, sess.Token); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if _, err := svc.Validate(ctx, sess.Token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestValidate_ExpiredInStore(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Issue(ctx, "admin@dentalspace.com", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Redis dropping the id is the same as an expired or revoked session.
	mr.FastForward(13 * time.Hour)

	if _, err := svc.Validate(ctx, sess.Token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Validate(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Issue(ctx, "admin@dentalspace.com", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	other := NewService(NewRedisStore(client), "different-secret", time.Hour, time.Hour)
	if _, err := other.Validate(ctx, sess.Token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestRevoke_GarbageIsNoop(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Revoke(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("expected nil for malformed token, got %v", err)
	}
}
