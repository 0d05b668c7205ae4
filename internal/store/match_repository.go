package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/ecra2001/chess-old/internal/chess"
	"github.com/ecra2001/chess-old/internal/errs"
)

const (
	matchPrefix = "game:"
	sequenceKey = "seq:game"
)

type MatchRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

func NewMatchRepository(db *badger.DB, log *slog.Logger) (*MatchRepository, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), 64)
	if err != nil {
		return nil, fmt.Errorf("game id sequence: %w", err)
	}
	return &MatchRepository{db: db, log: log, seq: seq}, nil
}

// Close hands unused sequence leases back to badger.
func (r *MatchRepository) Close() error {
	return r.seq.Release()
}

func matchKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", matchPrefix, id))
}

// Create stores a new match with a fresh game and no seated players.
// IDs start at 1 so that 0 can mean "no match".
func (r *MatchRepository) Create(ctx context.Context, name string) (Match, error) {
	if err := ctx.Err(); err != nil {
		return Match{}, err
	}
	next, err := r.seq.Next()
	if err != nil {
		return Match{}, fmt.Errorf("next game id: %w", err)
	}
	m := Match{ID: int(next) + 1, Name: name, Game: chess.NewGame(), Version: 1}
	data, err := json.Marshal(m)
	if err != nil {
		return Match{}, fmt.Errorf("marshal game %d: %w", m.ID, err)
	}
	if err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(matchKey(m.ID), data)
	}); err != nil {
		return Match{}, err
	}
	r.log.Debug("Game created", "gameID", m.ID, "name", name)
	return m, nil
}

func (r *MatchRepository) Get(ctx context.Context, id int) (Match, error) {
	if err := ctx.Err(); err != nil {
		return Match{}, err
	}
	var m Match
	err := r.db.View(func(txn *badger.Txn) error {
		found, err := readMatch(txn, id)
		m = found
		return err
	})
	return m, err
}

// Update overwrites the stored match if its version still matches the one
// read by the caller, and bumps the version. A mismatch returns ErrStaleMatch.
func (r *MatchRepository) Update(ctx context.Context, m Match) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		current, err := readMatch(txn, m.ID)
		if err != nil {
			return err
		}
		if current.Version != m.Version {
			return fmt.Errorf("%w: game %d at version %d, update based on %d",
				errs.ErrStaleMatch, m.ID, current.Version, m.Version)
		}
		m.Version++
		return writeMatch(txn, m)
	})
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: game %d", errs.ErrStaleMatch, m.ID)
	}
	if err == nil {
		r.log.Debug("Game updated", "gameID", m.ID, "version", m.Version)
	}
	return err
}

// Join seats username as color in one transaction. Re-joining a seat the user
// already holds is accepted.
func (r *MatchRepository) Join(ctx context.Context, id int, color chess.Color, username string) (Match, error) {
	if err := ctx.Err(); err != nil {
		return Match{}, err
	}
	var joined Match
	err := r.db.Update(func(txn *badger.Txn) error {
		m, err := readMatch(txn, id)
		if err != nil {
			return err
		}
		if seated := m.Seat(color); seated != "" && seated != username {
			return fmt.Errorf("%w: %s seat of game %d", errs.ErrSeatTaken, color, id)
		}
		m.SetSeat(color, username)
		m.Version++
		joined = m
		return writeMatch(txn, m)
	})
	if errors.Is(err, badger.ErrConflict) {
		return Match{}, fmt.Errorf("%w: game %d", errs.ErrStaleMatch, id)
	}
	return joined, err
}

// List returns every match ordered by ID.
func (r *MatchRepository) List(ctx context.Context) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var matches []Match
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(matchPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var m Match
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return err
			}
			matches = append(matches, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func readMatch(txn *badger.Txn, id int) (Match, error) {
	var m Match
	item, err := txn.Get(matchKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return m, fmt.Errorf("%w: game %d", errs.ErrMatchNotFound, id)
	}
	if err != nil {
		return m, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &m)
	})
	if err != nil {
		return m, fmt.Errorf("decode game %d: %w", id, err)
	}
	if m.Game == nil {
		m.Game = chess.NewGame()
	}
	return m, nil
}

func writeMatch(txn *badger.Txn, m Match) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal game %d: %w", m.ID, err)
	}
	return txn.Set(matchKey(m.ID), data)
}
