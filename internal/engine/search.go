package engine

import (
	"errors"

	"github.com/hailam/sharpmove/internal/board"
)

// ErrNoLegalMoves is returned when the side to move has no legal move.
// Checkmate and stalemate are not distinguished.
var ErrNoLegalMoves = errors.New("no legal moves")

// Candidate is one root move with the counts the search ranked it by.
type Candidate struct {
	Move        board.Move
	SafeReplies int // replies that do not win material for the replier
	Replies     int // all legal replies
	Material    int // material score after the move, positive favours White
}

// Analysis is the result of a sharp-move search.
type Analysis struct {
	Key         string // placement and side to move of the searched position
	Move        board.Move
	SafeReplies int
	Candidates  []Candidate
	Nodes       uint64 // positions generated
	Source      Source
}

// Best returns the candidate entry for the chosen move.
func (a Analysis) Best() (Candidate, bool) {
	for _, c := range a.Candidates {
		if c.Move == a.Move {
			return c, true
		}
	}
	return Candidate{}, false
}

// PositionKey identifies a position for caching and for matching results
// to positions. Carried-through FEN fields do not affect the search and are
// left out.
func PositionKey(pos board.Position) string {
	return pos.Placement() + " " + string(pos.SideToMove.Char())
}

// SafeReplyCount counts the legal replies in next whose resulting material
// score, seen from original's side, is zero or less. The search passes the
// replying side as original, so the count is the number of replies that
// leave the replier no better off.
//
// A position whose side to move has no king (it was just captured) has no
// replies and counts zero.
func SafeReplyCount(next board.Position, original board.Color) (int, error) {
	safe, _, err := countReplies(next, original)
	return safe, err
}

// countReplies returns the safe and total reply counts.
func countReplies(next board.Position, original board.Color) (safe, total int, err error) {
	if next.KingSquare(next.SideToMove) == board.NoSquare {
		return 0, 0, nil
	}

	replies, err := next.LegalMoves()
	if err != nil {
		return 0, 0, err
	}

	for _, r := range replies.Slice() {
		if RelativeScore(next.ApplyMove(r), original) <= 0 {
			safe++
		}
	}
	return safe, replies.Len(), nil
}

// ChooseSharpMove returns the legal move that leaves the opponent the fewest
// safe replies. The first move in generation order wins ties.
func ChooseSharpMove(pos board.Position) (board.Move, error) {
	a, err := Analyse(pos)
	if err != nil {
		return board.NoMove, err
	}
	return a.Move, nil
}

// Analyse runs the sharp-move search and reports every candidate.
func Analyse(pos board.Position) (Analysis, error) {
	a := Analysis{Key: PositionKey(pos), Move: board.NoMove, Source: SourceSearch}

	moves, err := pos.LegalMoves()
	if err != nil {
		return a, err
	}
	if moves.Len() == 0 {
		return a, ErrNoLegalMoves
	}

	a.Candidates = make([]Candidate, 0, moves.Len())
	best := -1
	for _, m := range moves.Slice() {
		next := pos.ApplyMove(m)
		safe, total, err := countReplies(next, next.SideToMove)
		if err != nil {
			return a, err
		}
		a.Nodes += 1 + uint64(total)

		a.Candidates = append(a.Candidates, Candidate{
			Move:        m,
			SafeReplies: safe,
			Replies:     total,
			Material:    MaterialScore(next),
		})

		if best < 0 || safe < best {
			best = safe
			a.Move = m
			a.SafeReplies = safe
		}
	}

	return a, nil
}
