package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustSquare(t *testing.T, coord string) Square {
	t.Helper()
	sq, ok := ParseSquare(coord)
	require.True(t, ok, "invalid square %q", coord)
	return sq
}

func destinations(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To.String())
	}
	return out
}

func TestPieceMoves_EmptyOrigin(t *testing.T) {
	req := require.New(t)
	b := NewBoard()

	req.Empty(PieceMoves(&b, mustSquare(t, "e4")))
	req.Empty(PieceMoves(&b, Sq(0, 3)))
	req.Empty(PieceMoves(&b, Sq(9, 9)))
}

func TestPieceMoves_PawnFromStart(t *testing.T) {
	req := require.New(t)
	b := NewBoard()

	req.ElementsMatch([]string{"e3", "e4"}, destinations(PieceMoves(&b, mustSquare(t, "e2"))))
	req.ElementsMatch([]string{"d6", "d5"}, destinations(PieceMoves(&b, mustSquare(t, "d7"))))
}

func TestPieceMoves_PawnBlocked(t *testing.T) {
	req := require.New(t)
	var b Board
	b.Set(mustSquare(t, "e2"), Piece{Type: Pawn, Color: White})
	b.Set(mustSquare(t, "e4"), Piece{Type: Knight, Color: Black})

	// Given the double step is blocked, only the single step remains
	req.ElementsMatch([]string{"e3"}, destinations(PieceMoves(&b, mustSquare(t, "e2"))))

	// When the square right in front is occupied, nothing is generated
	b.Set(mustSquare(t, "e3"), Piece{Type: Knight, Color: White})
	req.Empty(PieceMoves(&b, mustSquare(t, "e2")))
}

func TestPieceMoves_PawnCapturesOnlyOpponents(t *testing.T) {
	req := require.New(t)
	var b Board
	b.Set(mustSquare(t, "d4"), Piece{Type: Pawn, Color: White})
	b.Set(mustSquare(t, "c5"), Piece{Type: Rook, Color: Black})
	b.Set(mustSquare(t, "e5"), Piece{Type: Rook, Color: White})

	req.ElementsMatch([]string{"d5", "c5"}, destinations(PieceMoves(&b, mustSquare(t, "d4"))))
}

func TestPieceMoves_PawnPromotionExpandsToFourMoves(t *testing.T) {
	req := require.New(t)
	var b Board
	b.Set(mustSquare(t, "b2"), Piece{Type: Pawn, Color: Black})
	b.Set(mustSquare(t, "a1"), Piece{Type: Knight, Color: White})

	moves := PieceMoves(&b, mustSquare(t, "b2"))

	// b1 push and a1 capture, each with four promotion choices
	req.Len(moves, 8)
	for _, m := range moves {
		req.NotEqual(NoPiece, m.Promotion)
		req.Equal(1, m.To.Row)
	}
}

func TestPieceMoves_SlidersStopAtFirstPiece(t *testing.T) {
	req := require.New(t)
	var b Board
	b.Set(mustSquare(t, "a1"), Piece{Type: Rook, Color: White})
	b.Set(mustSquare(t, "a4"), Piece{Type: Pawn, Color: Black})
	b.Set(mustSquare(t, "d1"), Piece{Type: Pawn, Color: White})

	req.ElementsMatch(
		[]string{"a2", "a3", "a4", "b1", "c1"},
		destinations(PieceMoves(&b, mustSquare(t, "a1"))),
	)
}

func TestPieceMoves_BishopAndQueenRays(t *testing.T) {
	req := require.New(t)
	var b Board
	b.Set(mustSquare(t, "d4"), Piece{Type: Bishop, Color: White})

	req.Len(PieceMoves(&b, mustSquare(t, "d4")), 13)

	b.Set(mustSquare(t, "d4"), Piece{Type: Queen, Color: White})
	req.Len(PieceMoves(&b, mustSquare(t, "d4")), 27)
}

func TestPieceMoves_KnightAndKingOffsets(t *testing.T) {
	req := require.New(t)
	var b Board
	b.Set(mustSquare(t, "a1"), Piece{Type: Knight, Color: White})
	b.Set(mustSquare(t, "b3"), Piece{Type: Pawn, Color: White})
	b.Set(mustSquare(t, "c2"), Piece{Type: Pawn, Color: Black})

	req.ElementsMatch([]string{"c2"}, destinations(PieceMoves(&b, mustSquare(t, "a1"))))

	b.Set(mustSquare(t, "e5"), Piece{Type: King, Color: Black})
	req.Len(PieceMoves(&b, mustSquare(t, "e5")), 8)

	b.Set(mustSquare(t, "h8"), Piece{Type: King, Color: White})
	req.ElementsMatch([]string{"g8", "g7", "h7"}, destinations(PieceMoves(&b, mustSquare(t, "h8"))))
}
