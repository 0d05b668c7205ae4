package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ecra2001/chess-old/internal/errs"
)

const issuer = "chess-old"

// Claims is the payload carried by an auth token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Revocations stores the ids of tokens logged out before their expiry.
type Revocations interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Tokens issues and validates HS256 auth tokens.
type Tokens struct {
	key      []byte
	duration time.Duration
	now      func() time.Time
	revoked  Revocations
}

func NewTokens(secret string, duration time.Duration) *Tokens {
	return &Tokens{key: []byte(secret), duration: duration, now: time.Now}
}

// WithRevocations enables logout: revoked ids are stored in r and refused
// by Username.
func (t *Tokens) WithRevocations(r Revocations) *Tokens {
	t.revoked = r
	return t
}

// Issue signs a token for username valid for the configured duration.
func (t *Tokens) Issue(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", fmt.Errorf("%w: empty username", errs.ErrBadRequest)
	}
	now := t.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.duration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Username resolves a token to the username it was issued for. Any invalid,
// expired, revoked or foreign token is reported as ErrUnauthorized.
func (t *Tokens) Username(ctx context.Context, token string) (string, error) {
	claims, err := t.parse(token)
	if err != nil {
		return "", err
	}
	if t.revoked != nil {
		revoked, err := t.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return "", err
		}
		if revoked {
			return "", fmt.Errorf("%w: token revoked", errs.ErrUnauthorized)
		}
	}
	return claims.Username, nil
}

// Revoke invalidates token for the rest of its lifetime.
func (t *Tokens) Revoke(ctx context.Context, token string) error {
	if t.revoked == nil {
		return errors.New("token revocation is not configured")
	}
	claims, err := t.parse(token)
	if err != nil {
		return err
	}
	if claims.ID == "" {
		return fmt.Errorf("%w: token has no id", errs.ErrUnauthorized)
	}
	return t.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Sub(t.now()))
}

func (t *Tokens) parse(token string) (*Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", errs.ErrUnauthorized)
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Username == "" {
		return nil, fmt.Errorf("%w: invalid claims", errs.ErrUnauthorized)
	}
	return claims, nil
}
