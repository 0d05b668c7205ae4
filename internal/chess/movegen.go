package chess

type moveDelta struct{ dr, dc int }

var (
	rookDirections   = [...]moveDelta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirections = [...]moveDelta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirections  = [...]moveDelta{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	knightOffsets = [...]moveDelta{
		{2, 1}, {1, 2}, {-1, 2}, {-2, 1},
		{-2, -1}, {-1, -2}, {1, -2}, {2, -1},
	}
	kingOffsets = [...]moveDelta{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1},
		{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	}
)

// PieceMoves enumerates the pseudo-legal moves of the piece on from. It does
// not consider whether the mover's king is left attacked. An empty or
// off-board origin yields nil.
func PieceMoves(b *Board, from Square) []Move {
	pc, ok := b.At(from)
	if !ok {
		return nil
	}
	switch pc.Type {
	case Pawn:
		return pawnMoves(b, from, pc.Color)
	case Knight:
		return stepMoves(b, from, pc.Color, knightOffsets[:])
	case King:
		return stepMoves(b, from, pc.Color, kingOffsets[:])
	case Bishop:
		return slidingMoves(b, from, pc.Color, bishopDirections[:])
	case Rook:
		return slidingMoves(b, from, pc.Color, rookDirections[:])
	case Queen:
		return slidingMoves(b, from, pc.Color, queenDirections[:])
	default:
		return nil
	}
}

func pawnDirection(color Color) (forward, startRow, lastRow int) {
	if color == White {
		return 1, 2, 8
	}
	return -1, 7, 1
}

func pawnMoves(b *Board, from Square, color Color) []Move {
	forward, startRow, lastRow := pawnDirection(color)
	var moves []Move

	one := from.Offset(forward, 0)
	if _, occupied := b.At(one); one.Valid() && !occupied {
		moves = appendPawnMove(moves, from, one, lastRow)
		if from.Row == startRow {
			two := from.Offset(2*forward, 0)
			if _, occupied := b.At(two); two.Valid() && !occupied {
				moves = append(moves, Move{From: from, To: two})
			}
		}
	}

	for _, dc := range [...]int{-1, 1} {
		target := from.Offset(forward, dc)
		if occupant, ok := b.At(target); ok && occupant.Color != color {
			moves = appendPawnMove(moves, from, target, lastRow)
		}
	}
	return moves
}

// appendPawnMove expands a move onto the last rank into one move per promotion piece.
func appendPawnMove(moves []Move, from, to Square, lastRow int) []Move {
	if to.Row != lastRow {
		return append(moves, Move{From: from, To: to})
	}
	for _, pt := range PromotionPieces {
		moves = append(moves, Move{From: from, To: to, Promotion: pt})
	}
	return moves
}

func stepMoves(b *Board, from Square, color Color, offsets []moveDelta) []Move {
	var moves []Move
	for _, d := range offsets {
		target := from.Offset(d.dr, d.dc)
		if !target.Valid() {
			continue
		}
		if occupant, ok := b.At(target); !ok || occupant.Color != color {
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}

func slidingMoves(b *Board, from Square, color Color, directions []moveDelta) []Move {
	var moves []Move
	for _, d := range directions {
		for target := from.Offset(d.dr, d.dc); target.Valid(); target = target.Offset(d.dr, d.dc) {
			occupant, ok := b.At(target)
			if !ok {
				moves = append(moves, Move{From: from, To: target})
				continue
			}
			if occupant.Color != color {
				moves = append(moves, Move{From: from, To: target})
			}
			break
		}
	}
	return moves
}
