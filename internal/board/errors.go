package board

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is.
var (
	// ErrInvalidPlacement indicates a malformed piece placement or color token.
	ErrInvalidPlacement = errors.New("invalid placement encoding")

	// ErrSquareOutOfRange indicates a square index outside [0,63].
	ErrSquareOutOfRange = errors.New("square out of range")

	// ErrIllegalPosition indicates a position the rules cannot be applied to,
	// such as the side to move having no king.
	ErrIllegalPosition = errors.New("illegal position")

	// ErrIllegalMove indicates a move that is not in the legal move set.
	ErrIllegalMove = errors.New("illegal move")
)

// PlacementError describes where a placement string failed to parse.
type PlacementError struct {
	Rank   int    // Rank being parsed (8 down to 1), 0 if not applicable
	Column int    // 1-based character offset in the placement field
	Got    string // Offending token
	Reason string
	Err    error
}

// Error returns the message with location context.
func (e *PlacementError) Error() string {
	msg := e.Reason
	if e.Got != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Got)
	}
	if e.Rank > 0 {
		msg = fmt.Sprintf("rank %d: %s", e.Rank, msg)
	}
	if e.Column > 0 {
		msg = fmt.Sprintf("col %d: %s", e.Column, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *PlacementError) Unwrap() error {
	return e.Err
}

func placementErr(rank, col int, got, reason string) error {
	return &PlacementError{Rank: rank, Column: col, Got: got, Reason: reason, Err: ErrInvalidPlacement}
}
