package store

import (
	"context"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/ecra2001/chess-old/internal/chess"
	"github.com/ecra2001/chess-old/internal/errs"
)

func newRepository(t *testing.T) *MatchRepository {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	repository, err := NewMatchRepository(db, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repository.Close()
		_ = db.Close()
	})
	return repository
}

func TestMatchRepository_Create_And_Get(t *testing.T) {
	req := require.New(t)
	repository := newRepository(t)
	ctx := context.Background()

	// When two games are created
	first, err := repository.Create(ctx, "first")
	req.NoError(err)
	second, err := repository.Create(ctx, "second")
	req.NoError(err)

	// Then they get distinct positive ids
	req.Positive(first.ID)
	req.NotEqual(first.ID, second.ID)

	// And the stored game is a fresh one
	fetched, err := repository.Get(ctx, first.ID)
	req.NoError(err)
	req.Equal("first", fetched.Name)
	req.Empty(fetched.WhiteUsername)
	req.Empty(fetched.BlackUsername)
	req.Equal(chess.NewBoard(), fetched.Game.Board())
	req.Equal(chess.White, fetched.Game.Turn())
}

func TestMatchRepository_Get_Unknown(t *testing.T) {
	req := require.New(t)
	repository := newRepository(t)

	_, err := repository.Get(context.Background(), 4242)

	req.ErrorIs(err, errs.ErrMatchNotFound)
}

func TestMatchRepository_Update_Persists_Game(t *testing.T) {
	req := require.New(t)
	repository := newRepository(t)
	ctx := context.Background()
	m, err := repository.Create(ctx, "opening")
	req.NoError(err)

	// When a move is applied and the match is stored
	req.NoError(m.Game.ApplyMove(chess.Move{From: chess.Sq(2, 5), To: chess.Sq(4, 5)}))
	m.WhiteUsername = "alice"
	req.NoError(repository.Update(ctx, m))

	// Then the board, seats and version survive a reload
	fetched, err := repository.Get(ctx, m.ID)
	req.NoError(err)
	req.Equal(m.Game.Board(), fetched.Game.Board())
	req.Equal(chess.Black, fetched.Game.Turn())
	req.Equal("alice", fetched.WhiteUsername)
	req.Equal(m.Version+1, fetched.Version)
}

func TestMatchRepository_Update_Rejects_Stale_Version(t *testing.T) {
	req := require.New(t)
	repository := newRepository(t)
	ctx := context.Background()
	m, err := repository.Create(ctx, "race")
	req.NoError(err)

	// Given someone joined after we read the match
	_, err = repository.Join(ctx, m.ID, chess.Black, "bob")
	req.NoError(err)

	// When we write back our outdated copy
	m.WhiteUsername = "alice"
	err = repository.Update(ctx, m)

	// Then the write is refused and the join survives
	req.ErrorIs(err, errs.ErrStaleMatch)
	fetched, err := repository.Get(ctx, m.ID)
	req.NoError(err)
	req.Equal("bob", fetched.BlackUsername)
	req.Empty(fetched.WhiteUsername)
}

func TestMatchRepository_Update_Unknown(t *testing.T) {
	req := require.New(t)
	repository := newRepository(t)

	err := repository.Update(context.Background(), Match{ID: 77, Game: chess.NewGame()})

	req.ErrorIs(err, errs.ErrMatchNotFound)
}

func TestMatchRepository_Join(t *testing.T) {
	req := require.New(t)
	repository := newRepository(t)
	ctx := context.Background()
	m, err := repository.Create(ctx, "seats")
	req.NoError(err)

	joined, err := repository.Join(ctx, m.ID, chess.White, "alice")
	req.NoError(err)
	req.Equal("alice", joined.WhiteUsername)

	// Re-joining the same seat is fine
	_, err = repository.Join(ctx, m.ID, chess.White, "alice")
	req.NoError(err)

	// Taking someone else's seat is not
	_, err = repository.Join(ctx, m.ID, chess.White, "mallory")
	req.ErrorIs(err, errs.ErrSeatTaken)

	_, err = repository.Join(ctx, 999, chess.Black, "bob")
	req.ErrorIs(err, errs.ErrMatchNotFound)
}

func TestMatchRepository_List(t *testing.T) {
	req := require.New(t)
	repository := newRepository(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := repository.Create(ctx, name)
		req.NoError(err)
	}

	matches, err := repository.List(ctx)
	req.NoError(err)
	req.Len(matches, 3)
	req.Equal("a", matches[0].Name)
	req.Equal("c", matches[2].Name)
}

func TestMatch_SeatOf(t *testing.T) {
	req := require.New(t)
	m := Match{WhiteUsername: "alice", BlackUsername: "bob"}

	color, ok := m.SeatOf("bob")
	req.True(ok)
	req.Equal(chess.Black, color)

	_, ok = m.SeatOf("carol")
	req.False(ok)
	_, ok = Match{}.SeatOf("")
	req.False(ok)
}
