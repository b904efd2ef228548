package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Char returns the FEN active-color token.
func (c Color) Char() byte {
	if c == Black {
		return 'b'
	}
	return 'w'
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// Piece is a (type, color) pair. The zero value is NoPiece, so a zeroed
// square array is an empty board.
type Piece struct {
	kind  uint8 // PieceType+1; 0 means empty
	color Color
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// Named pieces for tests and setup code.
var (
	WhitePawn   = NewPiece(Pawn, White)
	WhiteKnight = NewPiece(Knight, White)
	WhiteBishop = NewPiece(Bishop, White)
	WhiteRook   = NewPiece(Rook, White)
	WhiteQueen  = NewPiece(Queen, White)
	WhiteKing   = NewPiece(King, White)
	BlackPawn   = NewPiece(Pawn, Black)
	BlackKnight = NewPiece(Knight, Black)
	BlackBishop = NewPiece(Bishop, Black)
	BlackRook   = NewPiece(Rook, Black)
	BlackQueen  = NewPiece(Queen, Black)
	BlackKing   = NewPiece(King, Black)
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece{kind: uint8(pt) + 1, color: c}
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p.kind == 0 {
		return NoPieceType
	}
	return PieceType(p.kind - 1)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p.kind == 0 {
		return NoColor
	}
	return p.color
}

// IsEmpty reports whether p is NoPiece.
func (p Piece) IsEmpty() bool {
	return p.kind == 0
}

// Is reports whether p is a piece of the given type and color.
func (p Piece) Is(pt PieceType, c Color) bool {
	return p == NewPiece(pt, c) && !p.IsEmpty()
}

// WithColor returns the same piece type in color c.
func (p Piece) WithColor(c Color) Piece {
	return NewPiece(p.Type(), c)
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	ch := p.Type().Char()
	if p.color == White {
		ch -= 'a' - 'A'
	}
	return string(ch)
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}
