package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/lostfound/internal/model"
	"github.com/idilsaglam/lostfound/internal/store/jsonstore"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Store remembers who is signed in across runs. Memory and file are kept
// in sync on every change. It never checks credentials; it records the
// outcome of a login the API already accepted.
type Store struct {
	mu   sync.RWMutex
	path string
	user *model.SessionUser
	log  *zap.Logger
}

// Open rehydrates the session once from path. A missing file means nobody
// is signed in; a malformed one is returned as an error.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{path: path, log: log}

	var u model.SessionUser
	found, err := jsonstore.Load(path, &u)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if found && strings.TrimSpace(u.Email) != "" {
		s.user = &u
		log.Debug("session restored", zap.String("email", u.Email))
	}
	return s, nil
}

// Login makes {email} the current user and persists it.
func (s *Store) Login(email string) error {
	return s.set(&model.SessionUser{Email: email})
}

// LoginWithToken is Login plus the bearer token the server issued.
func (s *Store) LoginWithToken(email, token string) error {
	return s.set(&model.SessionUser{Email: email, Token: token})
}

// Logout clears the user and deletes the persisted entry.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := jsonstore.Remove(s.path); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if s.user != nil {
		s.log.Info("logged out", zap.String("email", s.user.Email))
	}
	s.user = nil
	return nil
}

// set stores u as given; the email is only checked for being non-blank.
func (s *Store) set(u *model.SessionUser) error {
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("session: empty email")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := jsonstore.Save(s.path, u, 0o600); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if s.user.Equal(u) {
		s.log.Debug("session unchanged", zap.String("email", u.Email))
	} else {
		s.log.Info("logged in", zap.String("email", u.Email), zap.Bool("token", u.Token != ""))
	}
	s.user = u
	return nil
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *model.SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Token is the stored bearer token, empty when none was issued.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Token
}

func (s *Store) Path() string { return s.path }
