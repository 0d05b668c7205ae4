package chess

import (
	"fmt"
	"slices"
)

type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeCheckmate
	OutcomeStalemate
	OutcomeResignation
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCheckmate:
		return "CHECKMATE"
	case OutcomeStalemate:
		return "STALEMATE"
	case OutcomeResignation:
		return "RESIGNATION"
	default:
		return ""
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*o = OutcomeNone
	case "CHECKMATE":
		*o = OutcomeCheckmate
	case "STALEMATE":
		*o = OutcomeStalemate
	case "RESIGNATION":
		*o = OutcomeResignation
	default:
		return fmt.Errorf("invalid outcome %q", text)
	}
	return nil
}

// Game is the rules engine for one match. It is not safe for concurrent use;
// callers serialize access per match.
type Game struct {
	board   Board
	turn    Color
	over    bool
	outcome Outcome
	winner  Color
}

func NewGame() *Game {
	return &Game{board: NewBoard(), turn: White}
}

// NewGameFromBoard starts an in-progress game from an arbitrary position.
func NewGameFromBoard(board Board, turn Color) *Game {
	return &Game{board: board, turn: turn}
}

func (g *Game) Board() Board     { return g.board }
func (g *Game) Turn() Color      { return g.turn }
func (g *Game) Over() bool       { return g.over }
func (g *Game) Outcome() Outcome { return g.outcome }

// Winner reports the winning color for checkmate and resignation.
func (g *Game) Winner() (Color, bool) {
	if g.outcome == OutcomeCheckmate || g.outcome == OutcomeResignation {
		return g.winner, true
	}
	return White, false
}

func (g *Game) Clone() *Game {
	cp := *g
	return &cp
}

// LegalMoves returns the pseudo-legal moves from origin that do not leave the
// moving side's king attacked.
func (g *Game) LegalMoves(origin Square) []Move {
	pc, ok := g.board.At(origin)
	if !ok {
		return nil
	}
	candidates := PieceMoves(&g.board, origin)
	legal := candidates[:0]
	for _, m := range candidates {
		if !leavesKingAttacked(g.board, m, pc.Color) {
			legal = append(legal, m)
		}
	}
	return legal
}

// ApplyMove plays m for the side to move. On any failure the game is left
// untouched. When the opponent is left without a legal move the game ends in
// checkmate or stalemate.
func (g *Game) ApplyMove(m Move) error {
	if g.over {
		return fmt.Errorf("%w: %w", ErrIllegalMove, ErrGameOver)
	}
	pc, ok := g.board.At(m.From)
	if !ok {
		return fmt.Errorf("%w: no piece at %s", ErrIllegalMove, m.From)
	}
	if pc.Color != g.turn {
		return fmt.Errorf("%w: %s piece at %s but %s to move", ErrIllegalMove, pc.Color, m.From, g.turn)
	}
	if !slices.Contains(g.LegalMoves(m.From), m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	g.board = applyToBoard(g.board, m)
	g.turn = g.turn.Opposite()

	if !g.hasLegalMove(g.turn) {
		g.over = true
		if g.IsInCheck(g.turn) {
			g.outcome = OutcomeCheckmate
			g.winner = g.turn.Opposite()
		} else {
			g.outcome = OutcomeStalemate
		}
	}
	return nil
}

// Resign ends the game in favour of the opponent of color.
func (g *Game) Resign(color Color) error {
	if g.over {
		return ErrGameOver
	}
	g.over = true
	g.outcome = OutcomeResignation
	g.winner = color.Opposite()
	return nil
}

// IsInCheck reports whether any opposing piece attacks color's king. A board
// without that king is never in check.
func (g *Game) IsInCheck(color Color) bool {
	return kingAttacked(&g.board, color)
}

func (g *Game) IsInCheckmate(color Color) bool {
	return g.IsInCheck(color) && !g.hasLegalMove(color)
}

func (g *Game) IsInStalemate(color Color) bool {
	return !g.IsInCheck(color) && !g.hasLegalMove(color)
}

func (g *Game) hasLegalMove(color Color) bool {
	found := false
	g.board.Each(func(sq Square, pc Piece) {
		if found || pc.Color != color {
			return
		}
		found = len(g.LegalMoves(sq)) > 0
	})
	return found
}

// applyToBoard returns a copy of b with m played. The caller guarantees m is
// pseudo-legal on b.
func applyToBoard(b Board, m Move) Board {
	pc, _ := b.At(m.From)
	b.Clear(m.From)
	if m.Promotion != NoPiece && pc.Type == Pawn {
		if _, _, lastRow := pawnDirection(pc.Color); m.To.Row == lastRow {
			pc = Piece{Type: m.Promotion, Color: pc.Color}
		}
	}
	b.Set(m.To, pc)
	return b
}

func leavesKingAttacked(b Board, m Move, mover Color) bool {
	next := applyToBoard(b, m)
	return kingAttacked(&next, mover)
}

func kingAttacked(b *Board, color Color) bool {
	kingSq, ok := b.findKing(color)
	if !ok {
		return false
	}
	attacked := false
	b.Each(func(sq Square, pc Piece) {
		if attacked || pc.Color == color {
			return
		}
		for _, m := range PieceMoves(b, sq) {
			if m.To == kingSq {
				attacked = true
				return
			}
		}
	})
	return attacked
}
