//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=../mocks/mock_ports.go -package=mocks
package realtime

import (
	"context"

	"github.com/ecra2001/chess-old/internal/store"
)

// AuthLookup resolves an auth token to a username, failing with
// errs.ErrUnauthorized for unknown tokens.
type AuthLookup interface {
	Username(ctx context.Context, token string) (string, error)
}

// MatchStore is the persistence the dispatcher reads seats from and writes
// game state to. Get fails with errs.ErrMatchNotFound for unknown ids.
type MatchStore interface {
	Get(ctx context.Context, id int) (store.Match, error)
	Update(ctx context.Context, m store.Match) error
}
