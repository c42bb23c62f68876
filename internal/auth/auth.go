// Package auth keeps local accounts in the key-value store. Accounts never
// leave the device; there is no server to authenticate against.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rcliao/wellness/internal/model"
	"github.com/rcliao/wellness/internal/store"
)

// Storage keys.
const (
	KeyUsers        = "auth_users"
	KeyCurrentUser  = "auth_current_user"
	AvatarKeyPrefix = "user_avatar_"
)

var (
	ErrUserExists    = errors.New("user with this email already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrNotLoggedIn   = errors.New("not logged in")
)

type storedUser struct {
	model.User
	PasswordHash string `json:"passwordHash"`
}

// Service registers and signs in local users.
type Service struct {
	s    *store.Store
	cost int
}

// Option configures a Service.
type Option func(*Service)

// WithCost sets the bcrypt cost.
func WithCost(cost int) Option {
	return func(a *Service) { a.cost = cost }
}

// New returns a Service over s.
func New(s *store.Store, opts ...Option) *Service {
	a := &Service{s: s, cost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(a)
	}
	return a
}

// AvatarKey is the key holding a user's avatar URI.
func AvatarKey(userID string) string {
	return AvatarKeyPrefix + userID
}

// Register creates an account and makes it the current user.
func (a *Service) Register(ctx context.Context, email, password string) (model.User, error) {
	if err := ValidateEmail(email); err != nil {
		return model.User{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := storedUser{
		User: model.User{
			ID:        uuid.NewString(),
			Email:     normalizeEmail(email),
			CreatedAt: a.s.Now().UTC(),
		},
		PasswordHash: string(hash),
	}

	err = a.s.Update(ctx, KeyUsers, func(raw string, _ bool) (string, error) {
		users := a.decodeUsers(raw)
		for _, existing := range users {
			if existing.Email == u.Email {
				return "", ErrUserExists
			}
		}
		return encodeJSON(append(users, u))
	})
	if err != nil {
		return model.User{}, err
	}

	if err := a.setCurrent(ctx, u.User); err != nil {
		return model.User{}, err
	}
	return u.User, nil
}

// Login checks the credentials and makes the account the current user.
func (a *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	if err := ValidateEmail(email); err != nil {
		return model.User{}, err
	}
	if password == "" {
		return model.User{}, &ValidationError{Field: "password", Message: "enter a password"}
	}

	users, err := a.users(ctx)
	if err != nil {
		return model.User{}, err
	}
	normalized := normalizeEmail(email)
	for _, u := range users {
		if u.Email != normalized {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return model.User{}, ErrWrongPassword
		}
		if err := a.setCurrent(ctx, u.User); err != nil {
			return model.User{}, err
		}
		return u.User, nil
	}
	return model.User{}, ErrUserNotFound
}

// Logout clears the current user.
func (a *Service) Logout(ctx context.Context) error {
	return a.s.Delete(ctx, KeyCurrentUser)
}

// Current returns the signed-in user, or ErrNotLoggedIn.
func (a *Service) Current(ctx context.Context) (model.User, error) {
	raw, ok, err := a.s.Get(ctx, KeyCurrentUser)
	if err != nil {
		return model.User{}, err
	}
	if !ok {
		return model.User{}, ErrNotLoggedIn
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		a.s.Logger().Warn("malformed current user, treating as logged out",
			zap.String("key", KeyCurrentUser), zap.Error(err))
		return model.User{}, ErrNotLoggedIn
	}
	return u, nil
}

// SaveAvatar stores uri as the current user's avatar.
func (a *Service) SaveAvatar(ctx context.Context, uri string) (model.User, error) {
	u, err := a.Current(ctx)
	if err != nil {
		return model.User{}, err
	}
	u.AvatarURI = uri
	if err := a.setCurrent(ctx, u); err != nil {
		return model.User{}, err
	}
	if err := a.s.Set(ctx, AvatarKey(u.ID), uri); err != nil {
		return model.User{}, err
	}

	// Keep the account list in step so the avatar survives logout.
	err = a.s.Update(ctx, KeyUsers, func(raw string, _ bool) (string, error) {
		users := a.decodeUsers(raw)
		for i := range users {
			if users[i].ID == u.ID {
				users[i].AvatarURI = uri
			}
		}
		return encodeJSON(users)
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Avatar returns the current user's avatar URI, "" when none is set.
func (a *Service) Avatar(ctx context.Context) (string, error) {
	u, err := a.Current(ctx)
	if err != nil {
		return "", err
	}
	if u.AvatarURI != "" {
		return u.AvatarURI, nil
	}
	uri, _, err := a.s.Get(ctx, AvatarKey(u.ID))
	if err != nil {
		return "", err
	}
	return uri, nil
}

func (a *Service) setCurrent(ctx context.Context, u model.User) error {
	raw, err := encodeJSON(u)
	if err != nil {
		return err
	}
	return a.s.Set(ctx, KeyCurrentUser, raw)
}

func (a *Service) users(ctx context.Context) ([]storedUser, error) {
	raw, _, err := a.s.Get(ctx, KeyUsers)
	if err != nil {
		return nil, err
	}
	return a.decodeUsers(raw), nil
}

func (a *Service) decodeUsers(raw string) []storedUser {
	users := []storedUser{}
	if raw == "" {
		return users
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		a.s.Logger().Warn("malformed user list, reading as empty",
			zap.String("key", KeyUsers), zap.Error(err))
		return []storedUser{}
	}
	return users
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return string(b), nil
}
