package store

import "github.com/ecra2001/chess-old/internal/chess"

// Match is the persisted record of one game: its seats and the engine state.
// An empty username means the seat is free.
type Match struct {
	ID            int         `json:"gameID"`
	Name          string      `json:"gameName"`
	WhiteUsername string      `json:"whiteUsername,omitempty"`
	BlackUsername string      `json:"blackUsername,omitempty"`
	Game          *chess.Game `json:"game"`
	Version       uint64      `json:"version"`
}

// SeatOf returns the color held by username, if any.
func (m Match) SeatOf(username string) (chess.Color, bool) {
	switch {
	case username == "":
		return chess.White, false
	case username == m.WhiteUsername:
		return chess.White, true
	case username == m.BlackUsername:
		return chess.Black, true
	default:
		return chess.White, false
	}
}

func (m Match) Seat(color chess.Color) string {
	if color == chess.White {
		return m.WhiteUsername
	}
	return m.BlackUsername
}

func (m *Match) SetSeat(color chess.Color, username string) {
	if color == chess.White {
		m.WhiteUsername = username
	} else {
		m.BlackUsername = username
	}
}
