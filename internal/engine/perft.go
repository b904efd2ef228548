package engine

import "github.com/hailam/sharpmove/internal/board"

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(pos board.Position, depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}

	moves, err := pos.LegalMoves()
	if err != nil {
		return 0, err
	}
	if depth == 1 {
		return uint64(moves.Len()), nil
	}

	var nodes uint64
	for _, m := range moves.Slice() {
		n, err := Perft(pos.ApplyMove(m), depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// PerftEntry is the node count below one root move.
type PerftEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide runs perft below each root move, in generation order.
func Divide(pos board.Position, depth int) ([]PerftEntry, uint64, error) {
	if depth < 1 {
		return nil, 1, nil
	}

	moves, err := pos.LegalMoves()
	if err != nil {
		return nil, 0, err
	}

	entries := make([]PerftEntry, 0, moves.Len())
	var total uint64
	for _, m := range moves.Slice() {
		n, err := Perft(pos.ApplyMove(m), depth-1)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, PerftEntry{Move: m, Nodes: n})
		total += n
	}
	return entries, total, nil
}
