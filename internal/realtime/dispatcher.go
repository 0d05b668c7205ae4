package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/ecra2001/chess-old/internal/chess"
	"github.com/ecra2001/chess-old/internal/errs"
)

// Dispatcher turns inbound frames into match mutations and notifications.
// Every mutation of a match runs under that match's session lock, from the
// store read until its broadcasts are queued.
type Dispatcher struct {
	auth     AuthLookup
	matches  MatchStore
	registry *Registry
	sessions *Sessions
	validate *validator.Validate
	log      *slog.Logger
}

func NewDispatcher(log *slog.Logger, auth AuthLookup, matches MatchStore, registry *Registry) *Dispatcher {
	return &Dispatcher{
		auth:     auth,
		matches:  matches,
		registry: registry,
		sessions: NewSessions(log),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Open registers a new connection.
func (d *Dispatcher) Open(c Conn) {
	d.registry.Register(c)
}

// Dispatch handles one frame from c. A failure is reported to c alone as
// an ERROR message and returned.
func (d *Dispatcher) Dispatch(ctx context.Context, c Conn, frame []byte) error {
	cmd, err := decodeCommand(d.validate, frame)
	if err == nil {
		err = d.handle(ctx, c, cmd)
	}
	if err != nil {
		d.log.Debug("Command rejected", "conn", c.ID(), "command", cmd.CommandType, "game", cmd.GameID, "error", err)
		if sendErr := d.registry.SendTo(c, errorMessage(errorText(err))); sendErr != nil {
			d.log.Debug("Unable to report error", "conn", c.ID(), "error", sendErr)
		}
	}
	return err
}

// Disconnect forgets c once its connection is gone.
func (d *Dispatcher) Disconnect(c Conn) {
	matchID := d.registry.Unregister(c)
	if matchID != 0 {
		d.sessions.Part(matchID, c.ID())
	}
	d.log.Debug("Connection gone", "conn", c.ID(), "game", matchID,
		"connections", d.registry.Len(), "sessions", d.sessions.Len())
}

func (d *Dispatcher) handle(ctx context.Context, c Conn, cmd Command) error {
	username, err := d.auth.Username(ctx, cmd.AuthToken)
	if err != nil {
		return err
	}
	switch cmd.CommandType {
	case CommandConnect:
		return d.connect(ctx, c, username, cmd.GameID)
	case CommandMakeMove:
		return d.makeMove(ctx, c, username, cmd.GameID, *cmd.Move)
	case CommandLeave:
		return d.leave(ctx, c, username, cmd.GameID)
	case CommandResign:
		return d.resign(ctx, c, username, cmd.GameID)
	}
	return fmt.Errorf("%w: unknown command %q", errs.ErrBadRequest, cmd.CommandType)
}

func (d *Dispatcher) connect(ctx context.Context, c Conn, username string, gameID int) error {
	m, err := d.matches.Get(ctx, gameID)
	if err != nil {
		return err
	}
	role := roleOf(m, username)
	if prev := d.registry.MatchOf(c); prev != 0 && prev != gameID {
		d.sessions.Part(prev, c.ID())
	}

	sess := d.sessions.Join(gameID, c.ID())
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.game == nil {
		sess.game = m.Game
	}
	d.registry.Attach(c, gameID)
	d.log.Info("Connection joined game", "conn", c.ID(), "user", username, "game", gameID, "role", role.String())

	d.registry.Broadcast(gameID, notificationMessage("%s has connected to the game as %s", username, role), false, c)
	if err := d.registry.SendTo(c, loadGameMessage(sess.game)); err != nil {
		d.log.Debug("Unable to send game", "conn", c.ID(), "error", err)
	}
	return nil
}

// attachedSession returns the live session of gameID, provided c is attached
// to it.
func (d *Dispatcher) attachedSession(c Conn, gameID int) (*MatchSession, error) {
	if d.registry.MatchOf(c) != gameID {
		return nil, fmt.Errorf("%w: connection is not attached to game %d", errs.ErrMatchNotFound, gameID)
	}
	sess, ok := d.sessions.Get(gameID)
	if !ok {
		return nil, fmt.Errorf("%w: no live session for game %d", errs.ErrMatchNotFound, gameID)
	}
	return sess, nil
}

func (d *Dispatcher) makeMove(ctx context.Context, c Conn, username string, gameID int, move chess.Move) error {
	sess, err := d.attachedSession(c, gameID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	m, err := d.matches.Get(ctx, gameID)
	if err != nil {
		return err
	}
	color, seated := m.SeatOf(username)
	switch {
	case !seated:
		return errs.ErrObserverForbidden
	case sess.game.Over():
		return chess.ErrGameOver
	case sess.game.Turn() != color:
		return errs.ErrNotYourTurn
	}

	next := sess.game.Clone()
	if err := next.ApplyMove(move); err != nil {
		return fmt.Errorf("move %s: %w", move, err)
	}
	m.Game = next
	if err := d.matches.Update(ctx, m); err != nil {
		return fmt.Errorf("save game %d: %w", gameID, err)
	}
	sess.game = next
	d.log.Info("Move applied", "game", gameID, "user", username, "move", move.String())

	d.registry.Broadcast(gameID, moveNotification(next, username, color), true, c)
	d.registry.Broadcast(gameID, loadGameMessage(next), true, c)
	return nil
}

func moveNotification(g *chess.Game, username string, mover chess.Color) ServerMessage {
	opponent := mover.Opposite()
	switch {
	case g.Outcome() == chess.OutcomeCheckmate:
		return notificationMessage("Checkmate! %s wins!", username)
	case g.Outcome() == chess.OutcomeStalemate:
		return notificationMessage("Stalemate caused by %s's move! It's a tie!", username)
	case g.IsInCheck(opponent):
		return notificationMessage("A move has been made by %s, %s is now in check!", username, opponent)
	default:
		return notificationMessage("A move has been made by %s", username)
	}
}

func (d *Dispatcher) leave(ctx context.Context, c Conn, username string, gameID int) error {
	sess, err := d.attachedSession(c, gameID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	m, err := d.matches.Get(ctx, gameID)
	if err != nil {
		return err
	}
	if color, seated := m.SeatOf(username); seated {
		m.SetSeat(color, "")
		m.Game = sess.game
		if err := d.matches.Update(ctx, m); err != nil {
			return fmt.Errorf("free seat in game %d: %w", gameID, err)
		}
	}
	d.log.Info("Connection left game", "conn", c.ID(), "user", username, "game", gameID)

	d.registry.Broadcast(gameID, notificationMessage("%s has left the game", username), false, c)
	d.registry.Detach(c)
	d.sessions.Part(gameID, c.ID())
	return c.Close()
}

func (d *Dispatcher) resign(ctx context.Context, c Conn, username string, gameID int) error {
	sess, err := d.attachedSession(c, gameID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	m, err := d.matches.Get(ctx, gameID)
	if err != nil {
		return err
	}
	color, seated := m.SeatOf(username)
	if !seated {
		return errs.ErrObserverForbidden
	}
	next := sess.game.Clone()
	if err := next.Resign(color); err != nil {
		return err
	}
	m.Game = next
	if err := d.matches.Update(ctx, m); err != nil {
		return fmt.Errorf("save game %d: %w", gameID, err)
	}
	sess.game = next
	d.log.Info("Player resigned", "game", gameID, "user", username)

	d.registry.Broadcast(gameID, notificationMessage("%s has forfeited, %s wins!", username, opponentName(m, color)), true, c)
	return nil
}

// errorText is the client-facing text for a dispatch failure.
func errorText(err error) string {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return "Error: Not authorized"
	case errors.Is(err, errs.ErrMatchNotFound):
		return "Error: Not a valid game"
	case errors.Is(err, chess.ErrGameOver):
		return "Error: the game is over"
	case errors.Is(err, chess.ErrIllegalMove):
		return "Error: invalid move (you might need to specify a promotion piece)"
	case errors.Is(err, errs.ErrNotYourTurn):
		return "Error: it is not your turn"
	case errors.Is(err, errs.ErrObserverForbidden):
		return "Error: You are observing this game"
	default:
		return "Error: " + err.Error()
	}
}
