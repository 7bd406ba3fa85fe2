package app

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/linkmeet/linkmeet/internal/auth"
	"github.com/linkmeet/linkmeet/internal/domain"
	"github.com/linkmeet/linkmeet/internal/store"
)

const minPasswordLen = 8

// Accounts handles registration, login and profiles.
type Accounts struct {
	users  *store.Users
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

func NewAccounts(st *store.Store, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *Accounts {
	return &Accounts{users: st.Users, hasher: hasher, tokens: tokens}
}

// Session is what a successful register/login returns.
type Session struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Accounts) Register(ctx context.Context, email, password, name string) (*Session, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", domain.ErrBadRequest)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password too short: %w", domain.ErrBadRequest)
	}
	if name == "" || len(name) > domain.MaxNameLen {
		return nil, fmt.Errorf("invalid name: %w", domain.ErrBadRequest)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email in use: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, internal(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", domain.ErrInternal)
	}
	user := &domain.User{
		ID:        domain.UserID(uuid.NewString()),
		Email:     email,
		Password:  hash,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, internal(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", domain.ErrInternal)
	}
	log.Info().Str("module", "app.accounts").Str("user", string(user.ID)).Msg("registered")
	return &Session{User: user, Token: token}, nil
}

// Login verifies credentials; which of email or password was wrong is
// never disclosed.
func (s *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, internal(err)
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", domain.ErrInternal)
	}
	return &Session{User: user, Token: token}, nil
}

func (s *Accounts) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, internal(err)
	}
	return user, nil
}

// ListUsers returns the full directory, newest first; admins only.
func (s *Accounts) ListUsers(ctx context.Context, callerID domain.UserID) ([]domain.User, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, internal(err)
	}
	if !caller.IsAdmin {
		return nil, fmt.Errorf("admin only: %w", domain.ErrForbidden)
	}
	out, err := s.users.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

// GetUser looks up any user's profile; any authenticated caller.
func (s *Accounts) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, internal(err)
	}
	return user, nil
}

// SetOnline updates a user's online flag. Callers may update their own
// status; admins may update anyone's.
func (s *Accounts) SetOnline(ctx context.Context, callerID, targetID domain.UserID, online bool) (*domain.User, error) {
	if callerID != targetID {
		caller, err := s.users.FindByID(ctx, callerID)
		if err != nil {
			return nil, internal(err)
		}
		if !caller.IsAdmin {
			return nil, fmt.Errorf("not the user or an admin: %w", domain.ErrForbidden)
		}
	}
	if err := s.users.SetOnline(ctx, targetID, online); err != nil {
		return nil, internal(err)
	}
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, internal(err)
	}
	log.Info().Str("module", "app.accounts").Str("user", string(targetID)).
		Bool("online", online).Msg("status updated")
	return user, nil
}

func (s *Accounts) UpdateProfile(ctx context.Context, id domain.UserID, name, avatar string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, internal(err)
	}
	if name != "" {
		if err := user.SetName(name); err != nil {
			return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
		}
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, internal(err)
	}
	return user, nil
}
