package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ferndev/ragchat/internal/core"
	"github.com/ferndev/ragchat/pkg/log"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSignupRestricted is returned for any email other than the
	// demo account. Registration is a stub over the same mock user.
	ErrSignupRestricted = errors.New("registration currently limited to demo account")
)

const (
	mockEmail    = "user1@mail.com"
	mockPassword = "123456"
)

var mockUser = core.User{
	ID:    "1",
	Email: mockEmail,
	Name:  "John Doe",
}

// Service authenticates against the mock credential set and persists
// the auth state under its own KV key. The rest of the app only ever
// asks it for the signed-in signal and the user record.
type Service struct {
	kv    core.KV
	state core.AuthState
}

func NewService(kv core.KV) *Service {
	return &Service{kv: kv}
}

// Load restores the persisted auth state. A missing or malformed blob
// leaves the service signed out; the caller never sees an error.
func (s *Service) Load(ctx context.Context) {
	value, ok, err := s.kv.Get(ctx, core.AuthKey)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to load auth state")
		return
	}
	if !ok {
		return
	}

	var state core.AuthState
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("stored auth state is malformed, signing out")
		return
	}
	s.state = state
}

func (s *Service) save(ctx context.Context) {
	value, err := json.Marshal(s.state)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to encode auth state")
		return
	}
	if err := s.kv.Put(ctx, core.AuthKey, string(value)); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to save auth state")
	}
}

func (s *Service) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) != mockEmail || password != mockPassword {
		return ErrInvalidCredentials
	}

	user := mockUser
	s.state = core.AuthState{User: &user, IsAuthenticated: true}
	s.save(ctx)
	return nil
}

func (s *Service) Signup(ctx context.Context, email, password, name string) error {
	if strings.TrimSpace(email) != mockEmail {
		return ErrSignupRestricted
	}

	user := mockUser
	if name != "" {
		user.Name = name
	}
	s.state = core.AuthState{User: &user, IsAuthenticated: true}
	s.save(ctx)
	return nil
}

// Logout drops the persisted blob entirely; a missing key loads as the
// signed-out default.
func (s *Service) Logout(ctx context.Context) {
	s.state = core.AuthState{}
	if err := s.kv.Delete(ctx, core.AuthKey); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to remove auth state")
	}
}

func (s *Service) CurrentUser() (core.User, bool) {
	if s.state.User == nil {
		return core.User{}, false
	}
	return *s.state.User, true
}

func (s *Service) IsAuthenticated() bool {
	return s.state.IsAuthenticated
}
