package board

import "strings"

// ToSAN converts a legal move to Standard Algebraic Notation. Castling and
// promotion do not exist here, so the forms are piece letter, optional
// disambiguation, capture marker, destination and check marker.
func (m Move) ToSAN(pos Position) string {
	if m == NoMove {
		return "-"
	}

	piece := pos.PieceAt(m.From)
	if piece.IsEmpty() {
		return m.String() // Fallback to coordinates
	}

	var sb strings.Builder
	pt := piece.Type()

	// Piece letter and disambiguation (not for pawns)
	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(disambiguation(pos, m, pt))
	}

	if m.IsCapture(pos) {
		if pt == Pawn {
			// Pawn captures include the file of origin
			sb.WriteByte('a' + byte(m.From.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	// Check/checkmate marker. A position whose mover has lost its king
	// gets no marker.
	next := pos.ApplyMove(m)
	if outcome, err := next.Outcome(); err == nil {
		if outcome == Checkmate {
			sb.WriteByte('#')
		} else if next.InCheck() {
			sb.WriteByte('+')
		}
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece type to the same square.
func disambiguation(pos Position, m Move, pt PieceType) string {
	legal, err := pos.LegalMoves()
	if err != nil {
		return ""
	}

	var others []Square
	for _, other := range legal.Slice() {
		if other.To != m.To || other.From == m.From {
			continue
		}
		if pos.PieceAt(other.From).Type() == pt {
			others = append(others, other.From)
		}
	}
	if len(others) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range others {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	switch {
	case !sameFile:
		return string(rune('a' + m.From.File()))
	case !sameRank:
		return string(rune('0' + m.From.Rank()))
	default:
		return m.From.String()
	}
}

// MovesToSAN converts a sequence of moves played from pos to SAN.
func MovesToSAN(pos Position, moves []Move) []string {
	result := make([]string, len(moves))
	for i, m := range moves {
		result[i] = m.ToSAN(pos)
		pos = pos.ApplyMove(m)
	}
	return result
}
