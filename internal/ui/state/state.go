// Package state holds the viewer's game state: the position, the move
// history, square selection and the engine's current suggestion. It has no
// drawing code so it can be tested without a display.
package state

import (
	"errors"
	"fmt"

	"github.com/hailam/sharpmove/internal/board"
	"github.com/hailam/sharpmove/internal/engine"
)

// ErrNoSuggestion is returned by PlaySuggestion before an analysis arrives.
var ErrNoSuggestion = errors.New("no suggestion for this position")

// Session is the state behind one viewer window. It is not safe for
// concurrent use; the viewer drives it from its update loop.
type Session struct {
	start    board.Position
	position board.Position
	history  []board.Move
	undo     []board.Position

	selected board.Square
	targets  []board.Move

	// Suggestion for the current position, if one has been computed.
	analysis *engine.Analysis
	err      error

	// Keys of positions whose search has been requested but not delivered.
	pending map[string]bool
}

// New creates a session starting from pos.
func New(pos board.Position) *Session {
	return &Session{start: pos, position: pos, selected: board.NoSquare, pending: make(map[string]bool)}
}

// Position returns the current position.
func (s *Session) Position() board.Position {
	return s.position
}

// History returns the moves played so far.
func (s *Session) History() []board.Move {
	return s.history
}

// SANHistory returns the moves played so far in algebraic notation.
func (s *Session) SANHistory() []string {
	return board.MovesToSAN(s.start, s.history)
}

// LastMove returns the most recent move, or NoMove.
func (s *Session) LastMove() board.Move {
	if len(s.history) == 0 {
		return board.NoMove
	}
	return s.history[len(s.history)-1]
}

// Reset returns to the starting position.
func (s *Session) Reset() {
	s.position = s.start
	s.history = nil
	s.undo = nil
	s.clearTransient()
}

// Load replaces the starting position and resets.
func (s *Session) Load(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	s.start = pos
	s.Reset()
	return nil
}

// Play applies a legal move.
func (s *Session) Play(m board.Move) error {
	ok, err := s.position.IsLegal(m)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", m, board.ErrIllegalMove)
	}

	s.undo = append(s.undo, s.position)
	s.history = append(s.history, m)
	s.position = s.position.ApplyMove(m)
	s.clearTransient()
	return nil
}

// Undo takes back the last move. It returns false if there is none.
func (s *Session) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	s.position = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.history = s.history[:len(s.history)-1]
	s.clearTransient()
	return true
}

func (s *Session) clearTransient() {
	s.selected = board.NoSquare
	s.targets = nil
	s.analysis = nil
	s.err = nil
}

// Click handles a click on sq. Clicking one of the side to move's pieces
// selects it; clicking a highlighted destination plays the move. It reports
// whether a move was played.
func (s *Session) Click(sq board.Square) (bool, error) {
	if s.selected != board.NoSquare {
		for _, m := range s.targets {
			if m.To == sq {
				return true, s.Play(m)
			}
		}
	}

	piece := s.position.PieceAt(sq)
	if piece.IsEmpty() || piece.Color() != s.position.SideToMove || sq == s.selected {
		s.selected = board.NoSquare
		s.targets = nil
		return false, nil
	}

	legal, err := s.position.LegalMoves()
	if err != nil {
		return false, err
	}
	s.selected = sq
	s.targets = legal.From(sq)
	return false, nil
}

// Selected returns the selected square, or NoSquare.
func (s *Session) Selected() board.Square {
	return s.selected
}

// Targets returns the legal moves of the selected piece.
func (s *Session) Targets() []board.Move {
	return s.targets
}

// Outcome classifies the current position.
func (s *Session) Outcome() (board.Outcome, error) {
	return s.position.Outcome()
}

// SetAnalysis records the engine result for the position it was computed
// for. Results for any other position are dropped, so a slow search cannot
// overwrite the suggestion after the user has moved on.
func (s *Session) SetAnalysis(key string, a engine.Analysis, err error) bool {
	delete(s.pending, key)
	if key != engine.PositionKey(s.position) {
		return false
	}
	if err != nil {
		s.analysis, s.err = nil, err
		return true
	}
	s.analysis, s.err = &a, nil
	return true
}

// RequestAnalysis reports whether the current position needs a search: it
// has no result and none is in flight. On true the key stays in flight until
// SetAnalysis receives it.
func (s *Session) RequestAnalysis() (board.Position, string, bool) {
	key := engine.PositionKey(s.position)
	if s.analysis != nil || s.err != nil || s.pending[key] {
		return s.position, key, false
	}
	s.pending[key] = true
	return s.position, key, true
}

// Analysis returns the suggestion for the current position, if any.
func (s *Session) Analysis() (*engine.Analysis, error) {
	return s.analysis, s.err
}

// Suggestion returns the suggested move, or NoMove.
func (s *Session) Suggestion() board.Move {
	if s.analysis == nil {
		return board.NoMove
	}
	return s.analysis.Move
}

// PlaySuggestion plays the suggested move.
func (s *Session) PlaySuggestion() error {
	m := s.Suggestion()
	if m == board.NoMove {
		if s.err != nil {
			return s.err
		}
		return ErrNoSuggestion
	}
	return s.Play(m)
}
