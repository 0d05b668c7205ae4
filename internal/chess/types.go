package chess

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "WHITE"
	}
	return "BLACK"
}

func ParseColor(s string) (Color, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WHITE", "W":
		return White, true
	case "BLACK", "B":
		return Black, true
	default:
		return White, false
	}
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("invalid color %q", text)
	}
	*c = parsed
	return nil
}

// PieceType zero value means "no piece".
type PieceType uint8

const (
	NoPiece PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PromotionPieces lists the pieces a pawn may become, in generation order.
var PromotionPieces = [...]PieceType{Queen, Rook, Bishop, Knight}

func (p PieceType) String() string {
	switch p {
	case King:
		return "KING"
	case Queen:
		return "QUEEN"
	case Rook:
		return "ROOK"
	case Bishop:
		return "BISHOP"
	case Knight:
		return "KNIGHT"
	case Pawn:
		return "PAWN"
	case NoPiece:
		return ""
	default:
		return fmt.Sprintf("piece(%d)", p)
	}
}

func ParsePieceType(s string) (PieceType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "KING", "K":
		return King, true
	case "QUEEN", "Q":
		return Queen, true
	case "ROOK", "R":
		return Rook, true
	case "BISHOP", "B":
		return Bishop, true
	case "KNIGHT", "N":
		return Knight, true
	case "PAWN", "P":
		return Pawn, true
	default:
		return NoPiece, false
	}
}

func (p PieceType) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PieceType) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = NoPiece
		return nil
	}
	parsed, ok := ParsePieceType(string(text))
	if !ok {
		return fmt.Errorf("invalid piece type %q", text)
	}
	*p = parsed
	return nil
}

func (p PieceType) letter() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	default:
		return '.'
	}
}

// Piece is an immutable value; the zero Piece is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

func (p Piece) IsZero() bool { return p.Type == NoPiece }

// Letter returns the FEN letter of the piece: upper case for white, lower case for black.
func (p Piece) Letter() byte {
	l := p.Type.letter()
	if p.Color == Black && l != '.' {
		return l + ('a' - 'A')
	}
	return l
}

func pieceFromLetter(l byte) (Piece, bool) {
	if l == '.' {
		return Piece{}, true
	}
	color := White
	if l >= 'a' && l <= 'z' {
		color = Black
		l -= 'a' - 'A'
	}
	pt, ok := ParsePieceType(string(l))
	if !ok {
		return Piece{}, false
	}
	return Piece{Type: pt, Color: color}, true
}

func (p Piece) String() string {
	if p.IsZero() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String()
}

// Square addresses the board with 1-based row (rank) and column (file).
type Square struct {
	Row int `json:"row" validate:"min=1,max=8"`
	Col int `json:"col" validate:"min=1,max=8"`
}

func Sq(row, col int) Square { return Square{Row: row, Col: col} }

func (s Square) Valid() bool {
	return s.Row >= 1 && s.Row <= 8 && s.Col >= 1 && s.Col <= 8
}

func (s Square) Offset(dr, dc int) Square { return Square{Row: s.Row + dr, Col: s.Col + dc} }

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	file := byte('a' + s.Col - 1)
	rank := byte('0' + s.Row)
	return string([]byte{file, rank})
}

// ParseSquare reads algebraic coordinates such as "e2".
func ParseSquare(coord string) (Square, bool) {
	coord = strings.ToLower(strings.TrimSpace(coord))
	if len(coord) != 2 {
		return Square{}, false
	}
	row := int(coord[1] - '0')
	col := int(coord[0]-'a') + 1
	sq := Square{Row: row, Col: col}
	if !sq.Valid() {
		return Square{}, false
	}
	return sq, true
}

// UnmarshalJSON accepts {"row":r,"col":c} or an algebraic string.
func (s *Square) UnmarshalJSON(data []byte) error {
	var coord string
	if err := json.Unmarshal(data, &coord); err == nil {
		sq, ok := ParseSquare(coord)
		if !ok {
			return fmt.Errorf("invalid square %q", coord)
		}
		*s = sq
		return nil
	}
	var raw struct {
		Row int `json:"row"`
		Col int `json:"col"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Square{Row: raw.Row, Col: raw.Col}
	return nil
}

type Move struct {
	From      Square    `json:"start"`
	To        Square    `json:"end"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func (m Move) String() string {
	if m.Promotion != NoPiece {
		return m.From.String() + m.To.String() + "=" + string(m.Promotion.letter())
	}
	return m.From.String() + m.To.String()
}
