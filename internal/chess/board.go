package chess

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Board is an 8x8 grid indexed [row-1][col-1]. It is a plain value: assigning
// it copies every square, which is how the engine simulates moves.
type Board struct {
	cells [8][8]Piece
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting layout.
func NewBoard() Board {
	var b Board
	for col := 1; col <= 8; col++ {
		b.Set(Sq(1, col), Piece{Type: backRank[col-1], Color: White})
		b.Set(Sq(2, col), Piece{Type: Pawn, Color: White})
		b.Set(Sq(7, col), Piece{Type: Pawn, Color: Black})
		b.Set(Sq(8, col), Piece{Type: backRank[col-1], Color: Black})
	}
	return b
}

// At returns the piece on sq. Off-board squares read as empty.
func (b *Board) At(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	pc := b.cells[sq.Row-1][sq.Col-1]
	return pc, !pc.IsZero()
}

// Set places pc on sq; the zero Piece clears it. Off-board squares are ignored.
func (b *Board) Set(sq Square, pc Piece) {
	if !sq.Valid() {
		return
	}
	b.cells[sq.Row-1][sq.Col-1] = pc
}

func (b *Board) Clear(sq Square) { b.Set(sq, Piece{}) }

func (b Board) Clone() Board { return b }

// Each visits every occupied square from a1 to h8.
func (b *Board) Each(fn func(Square, Piece)) {
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			if pc := b.cells[row-1][col-1]; !pc.IsZero() {
				fn(Sq(row, col), pc)
			}
		}
	}
}

func (b *Board) findKing(color Color) (Square, bool) {
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			if pc := b.cells[row-1][col-1]; pc.Type == King && pc.Color == color {
				return Sq(row, col), true
			}
		}
	}
	return Square{}, false
}

// Ranks renders the board as eight strings, rank 1 first, using FEN letters
// and '.' for empty squares.
func (b Board) Ranks() []string {
	out := make([]string, 8)
	for row := 1; row <= 8; row++ {
		var sb strings.Builder
		for col := 1; col <= 8; col++ {
			sb.WriteByte(b.cells[row-1][col-1].Letter())
		}
		out[row-1] = sb.String()
	}
	return out
}

// ParseRanks is the inverse of Ranks.
func ParseRanks(ranks []string) (Board, error) {
	var b Board
	if len(ranks) != 8 {
		return b, fmt.Errorf("board needs 8 ranks, got %d", len(ranks))
	}
	for i, rank := range ranks {
		if len(rank) != 8 {
			return b, fmt.Errorf("rank %d: want 8 squares, got %q", i+1, rank)
		}
		for j := 0; j < 8; j++ {
			pc, ok := pieceFromLetter(rank[j])
			if !ok {
				return b, fmt.Errorf("rank %d: invalid piece %q", i+1, rank[j])
			}
			b.cells[i][j] = pc
		}
	}
	return b, nil
}

// String draws the board with rank 8 on top.
func (b Board) String() string {
	ranks := b.Ranks()
	var sb strings.Builder
	for row := 8; row >= 1; row-- {
		fmt.Fprintf(&sb, "%d %s\n", row, ranks[row-1])
	}
	sb.WriteString("  abcdefgh")
	return sb.String()
}

func (b Board) MarshalJSON() ([]byte, error) { return json.Marshal(b.Ranks()) }

func (b *Board) UnmarshalJSON(data []byte) error {
	var ranks []string
	if err := json.Unmarshal(data, &ranks); err != nil {
		return err
	}
	parsed, err := ParseRanks(ranks)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
