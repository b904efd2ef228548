package board

// Ray directions as square-index offsets. The order is part of the
// generation order and therefore of the search's tie-breaking.
var (
	bishopDirs = []int{-9, -7, 7, 9}
	rookDirs   = []int{-8, -1, 1, 8}
	queenDirs  = []int{-9, -7, 7, 9, -8, -1, 1, 8}
)

// knightOffsets are (row, file) deltas.
var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// PseudoLegalMoves generates the moves of color c that follow each piece's
// movement pattern, without checking king safety. SideToMove is ignored so
// either side can be probed. Moves are ordered by ascending origin square.
func (p Position) PseudoLegalMoves(c Color) *MoveList {
	ml := NewMoveList()
	p.generatePseudoMoves(ml, c)
	return ml
}

// generatePseudoMoves appends all pseudo-legal moves of color c to ml.
func (p *Position) generatePseudoMoves(ml *MoveList, c Color) {
	for sq := A8; sq <= H1; sq++ {
		piece := p.squares[sq]
		if piece.IsEmpty() || piece.Color() != c {
			continue
		}

		switch piece.Type() {
		case Pawn:
			p.generatePawnMoves(ml, sq, c)
		case Knight:
			p.generateKnightMoves(ml, sq, c)
		case Bishop:
			p.generateSliderMoves(ml, sq, c, bishopDirs)
		case Rook:
			p.generateSliderMoves(ml, sq, c, rookDirs)
		case Queen:
			p.generateSliderMoves(ml, sq, c, queenDirs)
		case King:
			p.generateKingMoves(ml, sq, c)
		}
	}
}

// canLand reports whether a piece of color c may move onto sq: the square
// is empty or holds an enemy piece.
func (p *Position) canLand(sq int, c Color) bool {
	target := p.squares[sq]
	return target.IsEmpty() || target.Color() != c
}

// generatePawnMoves generates single and double pushes and diagonal captures.
func (p *Position) generatePawnMoves(ml *MoveList, from Square, c Color) {
	dir, startRow := -8, 6 // row 0 is rank 8
	if c == Black {
		dir, startRow = 8, 1
	}

	idx := int(from)
	forward := idx + dir
	if onBoard(forward) && p.squares[forward].IsEmpty() {
		ml.Add(NewMove(from, Square(forward)))

		if from.Row() == startRow {
			double := idx + 2*dir
			if p.squares[double].IsEmpty() {
				ml.Add(NewMove(from, Square(double)))
			}
		}
	}

	file := from.File()
	for _, df := range [2]int{-1, 1} {
		tf := file + df
		if tf < 0 || tf > 7 {
			continue
		}
		target := idx + dir + df
		if !onBoard(target) {
			continue
		}
		tp := p.squares[target]
		if !tp.IsEmpty() && tp.Color() != c {
			ml.Add(NewMove(from, Square(target)))
		}
	}
}

// generateKnightMoves generates the eight L-shaped jumps.
func (p *Position) generateKnightMoves(ml *MoveList, from Square, c Color) {
	row, file := from.Row(), from.File()
	for _, off := range knightOffsets {
		r, f := row+off[0], file+off[1]
		if r < 0 || r > 7 || f < 0 || f > 7 {
			continue
		}
		to := r*8 + f
		if p.canLand(to, c) {
			ml.Add(NewMove(from, Square(to)))
		}
	}
}

// generateSliderMoves walks each ray one square at a time. A ray ends when
// it leaves the board, wraps around an edge (the file moves by more than one
// between consecutive squares), or reaches an occupied square, which is
// included only if it holds an enemy piece.
func (p *Position) generateSliderMoves(ml *MoveList, from Square, c Color, dirs []int) {
	for _, dir := range dirs {
		prev := int(from)
		for to := prev + dir; onBoard(to); to += dir {
			if abs(to%8-prev%8) > 1 {
				break
			}

			target := p.squares[to]
			if target.IsEmpty() {
				ml.Add(NewMove(from, Square(to)))
				prev = to
				continue
			}
			if target.Color() != c {
				ml.Add(NewMove(from, Square(to)))
			}
			break
		}
	}
}

// generateKingMoves generates the up to eight neighbouring squares.
func (p *Position) generateKingMoves(ml *MoveList, from Square, c Color) {
	row, file := from.Row(), from.File()
	for dr := -1; dr <= 1; dr++ {
		for df := -1; df <= 1; df++ {
			if dr == 0 && df == 0 {
				continue
			}
			r, f := row+dr, file+df
			if r < 0 || r > 7 || f < 0 || f > 7 {
				continue
			}
			to := r*8 + f
			if p.canLand(to, c) {
				ml.Add(NewMove(from, Square(to)))
			}
		}
	}
}

func onBoard(idx int) bool {
	return idx >= 0 && idx < 64
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
