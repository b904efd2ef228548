package board

import (
	"strings"
	"testing"
)

func moveStrings(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func TestStartPositionMoveOrder(t *testing.T) {
	pos := NewPosition()

	moves, err := pos.LegalMoves()
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}

	want := "a2a3 a2a4 b2b3 b2b4 c2c3 c2c4 d2d3 d2d4 e2e3 e2e4 f2f3 f2f4 g2g3 g2g4 h2h3 h2h4 " +
		"b1a3 b1c3 g1f3 g1h3"
	if got := moveStrings(moves.Slice()); got != want {
		t.Errorf("move order:\ngot  %s\nwant %s", got, want)
	}
}

func TestPawnPushes(t *testing.T) {
	pos := NewPosition()
	got := pos.PseudoLegalMoves(White).From(E2)
	if moveStrings(got) != "e2e3 e2e4" {
		t.Errorf("e2 moves = %v", got)
	}

	// Blocked double step
	pos, _ = ParseFEN("4k3/8/8/8/8/4n3/4P3/4K3 w")
	if got := pos.PseudoLegalMoves(White).From(E2); len(got) != 0 {
		t.Errorf("blocked e2 moves = %v, want none", got)
	}

	pos, _ = ParseFEN("4k3/8/8/8/4n3/8/4P3/4K3 w")
	if got := pos.PseudoLegalMoves(White).From(E2); moveStrings(got) != "e2e3" {
		t.Errorf("e2 moves = %v, want e2e3 only", got)
	}
}

func TestPawnCapturesDoNotWrap(t *testing.T) {
	// Pawn on a4 must not capture on h6 or h4.
	pos, _ := ParseFEN("4k3/8/7p/1p6/P6p/8/8/4K3 w")
	got := moveStrings(pos.PseudoLegalMoves(White).From(A4))
	if got != "a4a5 a4b5" {
		t.Errorf("a4 moves = %q, want %q", got, "a4a5 a4b5")
	}
}

func TestBlackPawnMoves(t *testing.T) {
	pos, _ := ParseFEN("4k3/7p/6P1/8/8/8/8/4K3 b")
	got := moveStrings(pos.PseudoLegalMoves(Black).From(H7))
	if got != "h7h6 h7h5 h7g6" {
		t.Errorf("h7 moves = %q", got)
	}
}

func TestKnightMoves(t *testing.T) {
	pos, _ := ParseFEN("4k3/8/8/8/8/8/8/N3K3 w")
	got := moveStrings(pos.PseudoLegalMoves(White).From(A1))
	if got != "a1b3 a1c2" {
		t.Errorf("a1 knight moves = %q", got)
	}

	pos, _ = ParseFEN("4k3/8/8/3N4/8/8/8/4K3 w")
	if n := len(pos.PseudoLegalMoves(White).From(D5)); n != 8 {
		t.Errorf("centralised knight has %d moves, want 8", n)
	}
}

func TestSlidersStopAtEdges(t *testing.T) {
	// Rook on h4: seven squares along the file, seven along the rank,
	// and no wrap onto a3 or a5.
	pos, _ := ParseFEN("k7/8/8/8/7R/8/8/K7 w")
	moves := pos.PseudoLegalMoves(White).From(H4)
	if len(moves) != 14 {
		t.Errorf("rook on h4 has %d moves, want 14: %v", len(moves), moves)
	}
	for _, m := range moves {
		if m.To.File() != 7 && m.To.Rank() != 4 {
			t.Errorf("rook move %v leaves file and rank", m)
		}
	}

	// Bishop on a1 has exactly the long diagonal.
	pos, _ = ParseFEN("1k6/8/8/8/8/8/8/B6K w")
	got := moveStrings(pos.PseudoLegalMoves(White).From(A1))
	if got != "a1b2 a1c3 a1d4 a1e5 a1f6 a1g7 a1h8" {
		t.Errorf("a1 bishop moves = %q", got)
	}

	// Bishop on h3 must not wrap to the a-file.
	pos, _ = ParseFEN("k7/8/8/8/8/7B/8/K7 w")
	for _, m := range pos.PseudoLegalMoves(White).From(H3) {
		if m.To.File() == 0 {
			t.Errorf("bishop wrapped: %v", m)
		}
	}
}

func TestSlidersStopAtPieces(t *testing.T) {
	pos, _ := ParseFEN("4k3/8/8/4p3/8/4P3/8/4R1K1 w")
	got := moveStrings(pos.PseudoLegalMoves(White).From(E1))
	// North: e2 then blocked by own pawn. West: d1 c1 b1 a1. East: f1.
	if got != "e1e2 e1d1 e1c1 e1b1 e1a1 e1f1" {
		t.Errorf("e1 rook moves = %q", got)
	}

	pos, _ = ParseFEN("4k3/8/8/4p3/8/8/8/4R1K1 w")
	moves := pos.PseudoLegalMoves(White)
	if !moves.Contains(NewMove(E1, E5)) {
		t.Error("rook should capture on e5")
	}
	if moves.Contains(NewMove(E1, E6)) {
		t.Error("rook must stop at the captured piece")
	}
}

func TestQueenDirectionOrder(t *testing.T) {
	pos, _ := ParseFEN("k7/8/8/8/8/8/1K6/Q7 w")
	got := moveStrings(pos.PseudoLegalMoves(White).From(A1))
	// Diagonals first (blocked by own king on b2), then rook rays.
	want := "a1a2 a1a3 a1a4 a1a5 a1a6 a1a7 a1a8 a1b1 a1c1 a1d1 a1e1 a1f1 a1g1 a1h1"
	if got != want {
		t.Errorf("queen moves:\ngot  %s\nwant %s", got, want)
	}
}

func TestKingMoves(t *testing.T) {
	pos, _ := ParseFEN("4k3/8/8/8/8/8/8/K7 w")
	got := moveStrings(pos.PseudoLegalMoves(White).From(A1))
	if got != "a1a2 a1b2 a1b1" {
		t.Errorf("a1 king moves = %q", got)
	}
}

func TestPseudoLegalDeterministic(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - -")
	if err != nil {
		t.Fatal(err)
	}
	first := moveStrings(pos.PseudoLegalMoves(White).Slice())
	for i := 0; i < 10; i++ {
		if got := moveStrings(pos.PseudoLegalMoves(White).Slice()); got != first {
			t.Fatalf("run %d differs:\n%s\n%s", i, got, first)
		}
	}
}

func TestSideToMoveIgnoredByPseudoLegal(t *testing.T) {
	pos := NewPosition()
	if n := pos.PseudoLegalMoves(Black).Len(); n != 20 {
		t.Errorf("black pseudo moves with white to move = %d, want 20", n)
	}
}
