// Package service implements the in-process session store
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	perr "classwatch/internal/platform/errors"
	"classwatch/internal/services/session/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Config for the session service
type Config struct {
	// IdleTimeout expires a session unused for longer than this
	IdleTimeout time.Duration
}

// Service owns the live session map. State is process-local: initialized
// empty, inserted on login, removed on logout or lazily on expired access;
// nothing survives a restart
type Service struct {
	cfg   Config
	users map[string]domain.User

	mu       sync.Mutex
	sessions map[string]*domain.Session

	now func() time.Time // seam for tests
}

// New constructs a session store; a non-positive idle timeout gets 1h
func New(cfg Config, users []domain.User) *Service {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = time.Hour
	}
	byName := make(map[string]domain.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &Service{
		cfg:      cfg,
		users:    byName,
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
	}
}

// Login implements domain.AuthPort
func (s *Service) Login(_ context.Context, username, password string) (domain.Session, error) {
	u, ok := s.users[username]
	if !ok {
		return domain.Session{}, perr.Unauthorizedf("bad username or password")
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return domain.Session{}, perr.Unauthorizedf("bad username or password")
	}

	sess := domain.Session{
		ID:              uuid.NewString(),
		Username:        u.Username,
		Role:            u.Role,
		ActuatorControl: u.ActuatorControl,
		LastActivity:    s.now(),
	}
	if u.ActuatorControl {
		sess.ActuatorToken = newActuatorToken()
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &sess
	s.mu.Unlock()

	return sess, nil
}

// Verify implements domain.AuthPort
func (s *Service) Verify(_ context.Context, sessionID string) (domain.Session, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.Session{}, perr.Unauthorizedf("unknown session")
	}
	if now.Sub(sess.LastActivity) > s.cfg.IdleTimeout {
		delete(s.sessions, sessionID)
		return domain.Session{}, perr.Unauthorizedf("session expired")
	}
	sess.LastActivity = now
	return *sess, nil
}

// Logout implements domain.AuthPort
func (s *Service) Logout(_ context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// VerifyActuatorToken implements domain.TokenVerifierPort. An expired
// session's token is swept here rather than kept on a separate list, so
// token validity can never diverge from session validity
func (s *Service) VerifyActuatorToken(_ context.Context, token string) bool {
	if token == "" {
		return false
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if now.Sub(sess.LastActivity) > s.cfg.IdleTimeout {
			delete(s.sessions, id)
			continue
		}
		if sess.ActuatorToken != "" && sess.ActuatorToken == token {
			return true
		}
	}
	return false
}

// newActuatorToken returns a 256-bit url-safe opaque value
func newActuatorToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// MustHashPassword bcrypt-hashes a configured plaintext password at startup
func MustHashPassword(plain string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}
