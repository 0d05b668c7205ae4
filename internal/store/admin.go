package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Admin holds operations spanning every repository.
type Admin struct {
	db  *badger.DB
	log *slog.Logger
}

func NewAdmin(db *badger.DB, log *slog.Logger) *Admin {
	return &Admin{db: db, log: log}
}

// Clear deletes every game and every user. Revoked token ids and the game id
// sequence are kept, so ids are never reused and logged out tokens stay dead.
func (a *Admin) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.db.DropPrefix([]byte(matchPrefix), []byte(userPrefix)); err != nil {
		return fmt.Errorf("clear database: %w", err)
	}
	a.log.Warn("Database cleared")
	return nil
}
