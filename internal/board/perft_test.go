package board

import "testing"

// Perft counts the number of leaf nodes at the given depth.
// This is the standard way to verify move generation correctness.
func perft(t *testing.T, p Position, depth int) int64 {
	t.Helper()
	if depth == 0 {
		return 1
	}

	moves, err := p.LegalMoves()
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for _, m := range moves.Slice() {
		nodes += perft(t, p.ApplyMove(m), depth-1)
	}
	return nodes
}

// TestPerftStartingPosition tests move generation from the starting position.
// Castling, en passant and promotion cannot occur within four plies, so the
// standard counts apply.
func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if tc.depth > 3 && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			got := perft(t, pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftKiwipeteNoCastling uses Kiwipete with castling rights removed.
// The standard 48 moves include two castles.
func TestPerftKiwipeteNoCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if got := perft(t, pos, 1); got != 46 {
		t.Errorf("perft(1) = %d, want 46", got)
	}
}

// TestPerftPosition3 tests rook and king play along a pinned rank.
// FEN: 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if got := perft(t, pos, 1); got != 14 {
		t.Errorf("perft(1) = %d, want 14", got)
	}
}
