package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const revokedPrefix = "revoked:"

// RevocationRepository remembers revoked token ids until the token would
// have expired anyway. Entries carry a badger TTL so they vanish on their own.
type RevocationRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewRevocationRepository(db *badger.DB, log *slog.Logger) *RevocationRepository {
	return &RevocationRepository{db: db, log: log}
}

// Revoke marks jti as revoked for ttl. A non-positive ttl is a no-op.
func (r *RevocationRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(revokedPrefix+jti), nil).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	r.log.Debug("Token revoked", "jti", jti, "ttl", ttl)
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(revokedPrefix + jti))
		return err
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup revoked token %s: %w", jti, err)
	}
}
