package store

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRevocationRepository_Revoke(t *testing.T) {
	req := require.New(t)
	revoked := NewRevocationRepository(newRepository(t).db, slog.Default())
	ctx := context.Background()

	// Given a fresh id
	ok, err := revoked.IsRevoked(ctx, "jti-1")
	req.NoError(err)
	req.False(ok)

	// When it is revoked
	req.NoError(revoked.Revoke(ctx, "jti-1", time.Hour))

	// Then it is reported as revoked and other ids are not
	ok, err = revoked.IsRevoked(ctx, "jti-1")
	req.NoError(err)
	req.True(ok)
	ok, err = revoked.IsRevoked(ctx, "jti-2")
	req.NoError(err)
	req.False(ok)
}

func TestRevocationRepository_Expired_Lifetime_Is_Not_Stored(t *testing.T) {
	req := require.New(t)
	revoked := NewRevocationRepository(newRepository(t).db, slog.Default())
	ctx := context.Background()

	req.NoError(revoked.Revoke(ctx, "jti-1", 0))

	ok, err := revoked.IsRevoked(ctx, "jti-1")
	req.NoError(err)
	req.False(ok)
}

func TestAdmin_Clear(t *testing.T) {
	req := require.New(t)
	matches := newRepository(t)
	users := NewUserRepository(matches.db, slog.Default())
	revoked := NewRevocationRepository(matches.db, slog.Default())
	ctx := context.Background()

	// Given a game, a user and a revoked token
	first, err := matches.Create(ctx, "first")
	req.NoError(err)
	req.NoError(users.Create(ctx, User{Username: "alice", PasswordHash: "hash"}))
	req.NoError(revoked.Revoke(ctx, "jti-1", time.Hour))

	// When the database is cleared
	req.NoError(NewAdmin(matches.db, slog.Default()).Clear(ctx))

	// Then games and users are gone
	listed, err := matches.List(ctx)
	req.NoError(err)
	req.Empty(listed)
	_, err = users.Get(ctx, "alice")
	req.Error(err)

	// And revocations and the id sequence survive
	ok, err := revoked.IsRevoked(ctx, "jti-1")
	req.NoError(err)
	req.True(ok)
	second, err := matches.Create(ctx, "second")
	req.NoError(err)
	req.Greater(second.ID, first.ID)
}
