package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position. Only the placement
// and active color are interpreted; the remaining fields are optional and
// kept verbatim for printing.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return Position{}, fmt.Errorf("need at least 2 FEN fields, got %d: %w", len(parts), ErrInvalidPlacement)
	}

	side, err := ParseColor(parts[1])
	if err != nil {
		return Position{}, err
	}

	pos, err := ParsePlacement(parts[0], side)
	if err != nil {
		return Position{}, err
	}

	// Carried-through fields (2..5)
	fields := []*string{&pos.Castling, &pos.EnPassant, &pos.HalfMoveClock, &pos.FullMoveNumber}
	for i, dst := range fields {
		if len(parts) > i+2 {
			*dst = parts[i+2]
		}
	}

	return pos, nil
}

// ParseColor parses an active color token ("w" or "b").
func ParseColor(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return NoColor, &PlacementError{Got: s, Reason: "invalid side to move", Err: ErrInvalidPlacement}
	}
}

// ParsePlacement parses the piece placement field of a FEN string. Exactly
// eight '/'-separated ranks of exactly eight files each are required.
func ParsePlacement(placement string, side Color) (Position, error) {
	if side != White && side != Black {
		return Position{}, &PlacementError{Got: side.String(), Reason: "invalid side to move", Err: ErrInvalidPlacement}
	}

	pos := EmptyPosition()
	pos.SideToMove = side

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return Position{}, placementErr(0, 0, placement, fmt.Sprintf("need 8 ranks, got %d", len(ranks)))
	}

	col := 0
	for i, rankStr := range ranks {
		rank := 8 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			col++

			if file > 7 {
				return Position{}, placementErr(rank, col, string(c), "too many squares")
			}

			if c >= '1' && c <= '8' {
				// Skip empty squares
				file += int(c - '0')
				continue
			}

			// Place a piece
			piece := PieceFromChar(c)
			if piece.IsEmpty() {
				return Position{}, placementErr(rank, col, string(c), "invalid piece character")
			}
			pos.squares[NewSquare(file, rank)] = piece
			file++
		}
		col++ // separator

		if file != 8 {
			return Position{}, placementErr(rank, 0, rankStr, "need 8 files, got "+strconv.Itoa(file))
		}
	}

	return pos, nil
}

// Placement returns the piece placement field for the position.
func (p Position) Placement() string {
	var sb strings.Builder

	for rank := 8; rank >= 1; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.squares[NewSquare(file, rank)]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// FEN returns the FEN representation of the position. Carried-through fields
// default to "- - 0 1" when the position was not parsed from a full FEN.
func (p Position) FEN() string {
	var sb strings.Builder

	sb.WriteString(p.Placement())
	sb.WriteByte(' ')
	sb.WriteByte(p.SideToMove.Char())

	for _, f := range []struct{ v, def string }{
		{p.Castling, "-"},
		{p.EnPassant, "-"},
		{p.HalfMoveClock, "0"},
		{p.FullMoveNumber, "1"},
	} {
		sb.WriteByte(' ')
		if f.v == "" {
			sb.WriteString(f.def)
		} else {
			sb.WriteString(f.v)
		}
	}

	return sb.String()
}
