package board

import "fmt"

// Outcome classifies a position for display purposes.
type Outcome int

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// LegalMoves returns the pseudo-legal moves of the side to move that do not
// leave its own king attacked, in generation order.
//
// Each candidate is applied to a copy of the position and the king square is
// tested against every opponent reply, so the cost is quadratic in the
// branching factor. That is fine for one ply of look-ahead.
func (p Position) LegalMoves() (*MoveList, error) {
	us := p.SideToMove
	if p.KingSquare(us) == NoSquare {
		return nil, fmt.Errorf("%s to move has no king: %w", us, ErrIllegalPosition)
	}

	pseudo := p.PseudoLegalMoves(us)
	legal := NewMoveList()
	for _, m := range pseudo.Slice() {
		next := p.ApplyMove(m)
		king := next.KingSquare(us)
		if king == NoSquare {
			return nil, fmt.Errorf("%s king lost after %s: %w", us, m, ErrIllegalPosition)
		}
		if !next.IsAttacked(king, us.Other()) {
			legal.Add(m)
		}
	}
	return legal, nil
}

// IsAttacked returns true if sq is the destination of any pseudo-legal move
// of color by.
func (p Position) IsAttacked(sq Square, by Color) bool {
	return p.PseudoLegalMoves(by).HasDestination(sq)
}

// InCheck returns true if the side to move's king is attacked. A side with
// no king is never in check.
func (p Position) InCheck() bool {
	king := p.KingSquare(p.SideToMove)
	if king == NoSquare {
		return false
	}
	return p.IsAttacked(king, p.SideToMove.Other())
}

// IsLegal reports whether m is among the legal moves of the position.
func (p Position) IsLegal(m Move) (bool, error) {
	legal, err := p.LegalMoves()
	if err != nil {
		return false, err
	}
	return legal.Contains(m), nil
}

// Outcome returns Checkmate or Stalemate when the side to move has no legal
// moves, Ongoing otherwise.
func (p Position) Outcome() (Outcome, error) {
	legal, err := p.LegalMoves()
	if err != nil {
		return Ongoing, err
	}
	if legal.Len() > 0 {
		return Ongoing, nil
	}
	if p.InCheck() {
		return Checkmate, nil
	}
	return Stalemate, nil
}
