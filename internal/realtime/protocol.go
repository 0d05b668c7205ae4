package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ecra2001/chess-old/internal/chess"
	"github.com/ecra2001/chess-old/internal/errs"
)

type CommandType string

const (
	CommandConnect  CommandType = "CONNECT"
	CommandMakeMove CommandType = "MAKE_MOVE"
	CommandLeave    CommandType = "LEAVE"
	CommandResign   CommandType = "RESIGN"
)

// Command is an inbound frame.
type Command struct {
	CommandType CommandType `json:"commandType" validate:"required,oneof=CONNECT MAKE_MOVE LEAVE RESIGN"`
	AuthToken   string      `json:"authToken" validate:"required"`
	GameID      int         `json:"gameID" validate:"gt=0"`
	Move        *chess.Move `json:"move,omitempty" validate:"required_if=CommandType MAKE_MOVE"`
}

type ServerMessageType string

const (
	LoadGame     ServerMessageType = "LOAD_GAME"
	Notification ServerMessageType = "NOTIFICATION"
	Error        ServerMessageType = "ERROR"
)

// ServerMessage is an outbound frame. Game is set for LOAD_GAME only,
// Message for NOTIFICATION and ERROR.
type ServerMessage struct {
	ServerMessageType ServerMessageType `json:"serverMessageType"`
	Game              *chess.Snapshot   `json:"game,omitempty"`
	Message           string            `json:"message,omitempty"`
}

func loadGameMessage(g *chess.Game) ServerMessage {
	snapshot := g.Snapshot()
	return ServerMessage{ServerMessageType: LoadGame, Game: &snapshot}
}

func notificationMessage(format string, args ...any) ServerMessage {
	return ServerMessage{ServerMessageType: Notification, Message: fmt.Sprintf(format, args...)}
}

func errorMessage(text string) ServerMessage {
	return ServerMessage{ServerMessageType: Error, Message: text}
}

func decodeCommand(validate *validator.Validate, frame []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(frame, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: malformed frame: %w", errs.ErrBadRequest, err)
	}
	if err := validate.Struct(cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %w", errs.ErrBadRequest, err)
	}
	return cmd, nil
}
