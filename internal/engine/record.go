package engine

import (
	"fmt"

	"github.com/hailam/sharpmove/internal/board"
	"github.com/hailam/sharpmove/internal/storage"
)

// toRecord converts an analysis to its stored form.
func toRecord(pos board.Position, a Analysis) *storage.AnalysisRecord {
	rec := &storage.AnalysisRecord{
		Key:         a.Key,
		FEN:         pos.FEN(),
		Move:        a.Move.String(),
		SafeReplies: a.SafeReplies,
		Nodes:       a.Nodes,
		Candidates:  make([]storage.CandidateRecord, len(a.Candidates)),
	}
	for i, c := range a.Candidates {
		rec.Candidates[i] = storage.CandidateRecord{
			Move:        c.Move.String(),
			SafeReplies: c.SafeReplies,
			Replies:     c.Replies,
			Material:    c.Material,
		}
	}
	return rec
}

// fromRecord converts a stored record back to an analysis.
func fromRecord(rec *storage.AnalysisRecord) (Analysis, error) {
	move, err := board.ParseMove(rec.Move)
	if err != nil {
		return Analysis{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}

	a := Analysis{
		Key:         rec.Key,
		Move:        move,
		SafeReplies: rec.SafeReplies,
		Nodes:       rec.Nodes,
		Candidates:  make([]Candidate, len(rec.Candidates)),
	}
	for i, c := range rec.Candidates {
		m, err := board.ParseMove(c.Move)
		if err != nil {
			return Analysis{}, fmt.Errorf("record %s candidate %d: %w", rec.ID, i, err)
		}
		a.Candidates[i] = Candidate{
			Move:        m,
			SafeReplies: c.SafeReplies,
			Replies:     c.Replies,
			Material:    c.Material,
		}
	}
	return a, nil
}
