package service

import (
	"context"
	"testing"
	"time"

	perr "classwatch/internal/platform/errors"
	"classwatch/internal/services/session/domain"
)

func testUsers() []domain.User {
	return []domain.User{
		{
			Username:        "admin",
			PasswordHash:    MustHashPassword("hunter2"),
			Role:            domain.RoleAdmin,
			ActuatorControl: true,
		},
		{
			Username:     "viewer",
			PasswordHash: MustHashPassword("lookonly"),
			Role:         domain.RoleViewer,
		},
	}
}

func TestLoginIssuesActuatorTokenByCapability(t *testing.T) {
	t.Parallel()

	s := New(Config{}, testUsers())
	ctx := context.Background()

	admin, err := s.Login(ctx, "admin", "hunter2")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if admin.ID == "" || admin.ActuatorToken == "" {
		t.Fatalf("admin session missing credentials: %+v", admin)
	}

	viewer, err := s.Login(ctx, "viewer", "lookonly")
	if err != nil {
		t.Fatalf("viewer login: %v", err)
	}
	if viewer.ActuatorToken != "" {
		t.Fatal("viewer session must not carry an actuator token")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	s := New(Config{}, testUsers())
	ctx := context.Background()

	if _, err := s.Login(ctx, "admin", "wrong"); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("bad password: want unauthorized, got %v", err)
	}
	if _, err := s.Login(ctx, "nobody", "hunter2"); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("unknown user: want unauthorized, got %v", err)
	}
}

func TestVerifyRefreshesActivity(t *testing.T) {
	t.Parallel()

	s := New(Config{IdleTimeout: time.Hour}, testUsers())
	ctx := context.Background()

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	sess, err := s.Login(ctx, "admin", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// each touch inside the window keeps the session alive indefinitely
	for i := 0; i < 3; i++ {
		clock = clock.Add(50 * time.Minute)
		if _, err := s.Verify(ctx, sess.ID); err != nil {
			t.Fatalf("touch %d: %v", i, err)
		}
	}
}

func TestVerifyExpiresIdleSession(t *testing.T) {
	t.Parallel()

	s := New(Config{IdleTimeout: time.Hour}, testUsers())
	ctx := context.Background()

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	sess, _ := s.Login(ctx, "admin", "hunter2")

	clock = clock.Add(61 * time.Minute)
	if _, err := s.Verify(ctx, sess.ID); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("want unauthorized after idle timeout, got %v", err)
	}

	// expiry removes the session; coming back inside a fresh window changes nothing
	clock = clock.Add(-60 * time.Minute)
	if _, err := s.Verify(ctx, sess.ID); err == nil {
		t.Fatal("expired session must stay dead")
	}
}

func TestVerifyUnknownSession(t *testing.T) {
	t.Parallel()

	s := New(Config{}, testUsers())
	if _, err := s.Verify(context.Background(), "no-such-id"); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	t.Parallel()

	s := New(Config{}, testUsers())
	ctx := context.Background()

	sess, _ := s.Login(ctx, "admin", "hunter2")
	s.Logout(ctx, sess.ID)
	if _, err := s.Verify(ctx, sess.ID); err == nil {
		t.Fatal("logged-out session must not verify")
	}

	// unknown ids are a no-op
	s.Logout(ctx, "no-such-id")
}

func TestVerifyActuatorToken(t *testing.T) {
	t.Parallel()

	s := New(Config{IdleTimeout: time.Hour}, testUsers())
	ctx := context.Background()

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	sess, _ := s.Login(ctx, "admin", "hunter2")

	if !s.VerifyActuatorToken(ctx, sess.ActuatorToken) {
		t.Fatal("live token must verify")
	}
	if s.VerifyActuatorToken(ctx, "") || s.VerifyActuatorToken(ctx, "forged") {
		t.Fatal("empty and forged tokens must not verify")
	}

	// token validity dies with the owning session
	clock = clock.Add(2 * time.Hour)
	if s.VerifyActuatorToken(ctx, sess.ActuatorToken) {
		t.Fatal("token of an expired session must not verify")
	}
}

func TestLoginSessionsAreDistinct(t *testing.T) {
	t.Parallel()

	s := New(Config{}, testUsers())
	ctx := context.Background()

	a, _ := s.Login(ctx, "admin", "hunter2")
	b, _ := s.Login(ctx, "admin", "hunter2")
	if a.ID == b.ID || a.ActuatorToken == b.ActuatorToken {
		t.Fatal("each login must mint fresh credentials")
	}
}
