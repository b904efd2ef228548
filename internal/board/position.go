package board

import (
	"fmt"
	"strings"
)

// Position is a board snapshot: 64 squares plus the side to move. It has
// value semantics; ApplyMove returns a new Position and never touches the
// receiver, so positions can be shared freely between goroutines.
type Position struct {
	squares [64]Piece

	// Side to move
	SideToMove Color

	// FEN fields that the rules ignore. They are carried through so that
	// adapters can print the position back out.
	Castling       string
	EnPassant      string
	HalfMoveClock  string
	FullMoveNumber string
}

// NewPosition creates the starting position.
func NewPosition() Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// EmptyPosition returns a board with no pieces and White to move.
func EmptyPosition() Position {
	return Position{
		SideToMove:     White,
		Castling:       "-",
		EnPassant:      "-",
		HalfMoveClock:  "0",
		FullMoveNumber: "1",
	}
}

// Copy returns a copy of the position.
func (p Position) Copy() Position {
	return p
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
// sq must be a valid square.
func (p Position) PieceAt(sq Square) Piece {
	return p.squares[sq]
}

// SetPiece places a piece (or NoPiece) on a square. sq must be a valid square.
func (p *Position) SetPiece(sq Square, piece Piece) {
	p.squares[sq] = piece
}

// Lookup is the checked form of PieceAt.
func (p Position) Lookup(sq Square) (Piece, error) {
	if !sq.IsValid() {
		return NoPiece, fmt.Errorf("square %d: %w", sq, ErrSquareOutOfRange)
	}
	return p.squares[sq], nil
}

// IsEmpty returns true if the square is empty.
func (p Position) IsEmpty(sq Square) bool {
	return p.squares[sq].IsEmpty()
}

// ApplyMove returns the position after moving the piece on m.From to m.To.
// Whatever stood on m.To is overwritten. The move is not checked for
// legality; callers pass moves from PseudoLegalMoves or LegalMoves.
func (p Position) ApplyMove(m Move) Position {
	next := p
	piece := next.squares[m.From]
	next.squares[m.From] = NoPiece
	if !piece.IsEmpty() {
		next.squares[m.To] = piece
	}
	next.SideToMove = p.SideToMove.Other()
	return next
}

// KingSquare returns the first square holding c's king, or NoSquare.
func (p Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := A8; sq <= H1; sq++ {
		if p.squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// ColorFlipped returns the position with every piece's color swapped.
// Squares and side to move are unchanged.
func (p Position) ColorFlipped() Position {
	next := p
	for sq := A8; sq <= H1; sq++ {
		piece := p.squares[sq]
		if !piece.IsEmpty() {
			next.squares[sq] = piece.WithColor(piece.Color().Other())
		}
	}
	return next
}

// Count returns how many pieces of the given type and color are on the board.
func (p Position) Count(pt PieceType, c Color) int {
	want := NewPiece(pt, c)
	n := 0
	for _, piece := range p.squares {
		if piece == want {
			n++
		}
	}
	return n
}

// Validate checks the invariants the rules assume but parsing does not
// enforce: one king per side and no pawns on the back ranks.
func (p Position) Validate() error {
	if n := p.Count(King, White); n != 1 {
		return fmt.Errorf("white has %d kings: %w", n, ErrIllegalPosition)
	}
	if n := p.Count(King, Black); n != 1 {
		return fmt.Errorf("black has %d kings: %w", n, ErrIllegalPosition)
	}
	for file := 0; file < 8; file++ {
		for _, rank := range []int{1, 8} {
			if p.squares[NewSquare(file, rank)].Type() == Pawn {
				return fmt.Errorf("pawn on %s: %w", NewSquare(file, rank), ErrIllegalPosition)
			}
		}
	}
	return nil
}

// String returns a visual representation of the position.
func (p Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 8; rank >= 1; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank)
		for file := 0; file < 8; file++ {
			piece := p.squares[NewSquare(file, rank)]
			if piece.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "FEN: %s\n", p.FEN())
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash())
	return sb.String()
}
