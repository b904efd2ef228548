package board

import "fmt"

// Move is an (origin, destination) pair. There is no encoding for
// promotion, castling or en passant.
type Move struct {
	From Square
	To   Square
}

// NoMove represents an absent move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// Reverse returns the move from To back to From.
func (m Move) Reverse() Move {
	return Move{From: m.To, To: m.From}
}

// IsCapture returns true if the destination holds a piece in pos.
func (m Move) IsCapture(pos Position) bool {
	return !pos.PieceAt(m.To).IsEmpty()
}

// String returns the coordinate form of the move (e.g., "e2e4").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// Arrow returns the display form used by the viewer (e.g., "e2 → e4").
func (m Move) Arrow() string {
	if m == NoMove {
		return "none"
	}
	return m.From.String() + " → " + m.To.String()
}

// ParseMove parses a coordinate move such as "e2e4". A trailing promotion
// letter is rejected because promotion moves cannot be represented.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move string %q: %w", s, ErrIllegalMove)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	return NewMove(from, to), nil
}

// MoveList is an ordered list of moves. Generation order is significant:
// the search breaks ties by it.
type MoveList struct {
	moves []Move
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{moves: make([]Move, 0, 48)}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves = append(ml.moves, m)
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return len(ml.moves)
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.moves = ml.moves[:0]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for _, mv := range ml.moves {
		if mv == m {
			return true
		}
	}
	return false
}

// HasDestination returns true if any move in the list lands on sq.
func (ml *MoveList) HasDestination(sq Square) bool {
	for _, mv := range ml.moves {
		if mv.To == sq {
			return true
		}
	}
	return false
}

// From returns the moves whose origin is sq, preserving order.
func (ml *MoveList) From(sq Square) []Move {
	var out []Move
	for _, mv := range ml.moves {
		if mv.From == sq {
			out = append(out, mv)
		}
	}
	return out
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves
}
