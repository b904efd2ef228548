// Package engine implements the sharp-move search and its caching facade.
package engine

import (
	"strconv"

	"github.com/hailam/sharpmove/internal/board"
)

// Evaluation constants, in pawns. The king carries no material value.
const (
	PawnValue   = 1
	KnightValue = 3
	BishopValue = 3
	RookValue   = 5
	QueenValue  = 9
	KingValue   = 0
)

// Piece values array for quick lookup
var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// PieceValue returns the material value of a piece type.
func PieceValue(pt board.PieceType) int {
	if pt > board.NoPieceType {
		return 0
	}
	return pieceValues[pt]
}

// MaterialScore sums the signed values of all pieces on the board.
// Positive favours White, negative favours Black.
func MaterialScore(pos board.Position) int {
	score := 0
	for sq := board.A8; sq <= board.H1; sq++ {
		piece := pos.PieceAt(sq)
		if piece.IsEmpty() {
			continue
		}
		v := pieceValues[piece.Type()]
		if piece.Color() == board.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// RelativeScore returns the material score from c's point of view.
func RelativeScore(pos board.Position, c board.Color) int {
	if c == board.Black {
		return -MaterialScore(pos)
	}
	return MaterialScore(pos)
}

// Evaluate returns the static evaluation of a position from the side to
// move's point of view.
func Evaluate(pos board.Position) int {
	return RelativeScore(pos, pos.SideToMove)
}

// ScoreToString converts a material score to a signed string, e.g. "+5".
func ScoreToString(score int) string {
	if score > 0 {
		return "+" + strconv.Itoa(score)
	}
	return strconv.Itoa(score)
}
