package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecra2001/chess-old/internal/errs"
	"github.com/ecra2001/chess-old/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, u store.User) error
	Get(ctx context.Context, username string) (store.User, error)
}

// Accounts registers users and exchanges credentials for auth tokens.
type Accounts struct {
	users  UserStore
	tokens *Tokens
}

func NewAccounts(users UserStore, tokens *Tokens) *Accounts {
	return &Accounts{users: users, tokens: tokens}
}

// Register creates the user and returns a token for it.
func (a *Accounts) Register(ctx context.Context, username, password, email string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", errs.ErrBadRequest)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := a.users.Create(ctx, store.User{Username: username, Email: email, PasswordHash: hash}); err != nil {
		return "", err
	}
	return a.tokens.Issue(username)
}

// Login checks the credentials and returns a fresh token. Unknown users and
// wrong passwords are both ErrUnauthorized.
func (a *Accounts) Login(ctx context.Context, username, password string) (string, error) {
	u, err := a.users.Get(ctx, strings.TrimSpace(username))
	if errors.Is(err, errs.ErrUserNotFound) {
		return "", fmt.Errorf("%w: unknown user", errs.ErrUnauthorized)
	}
	if err != nil {
		return "", err
	}
	ok, err := ComparePassword(password, u.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: wrong password", errs.ErrUnauthorized)
	}
	return a.tokens.Issue(u.Username)
}

// Logout revokes token.
func (a *Accounts) Logout(ctx context.Context, token string) error {
	return a.tokens.Revoke(ctx, token)
}

func (a *Accounts) Username(ctx context.Context, token string) (string, error) {
	return a.tokens.Username(ctx, token)
}
