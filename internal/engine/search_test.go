package engine

import (
	"errors"
	"testing"

	"github.com/hailam/sharpmove/internal/board"
)

func TestChooseSharpMove(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{"captures hanging rook", "4k3/8/8/8/4r3/8/4R3/4K3 w - - 0 1", "e2e4"},
		{"leaves king no replies", "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1", "e2e8"},
		{"black captures hanging rook", "4k3/4r3/8/8/4R3/8/8/4K3 b - - 0 1", "e7e4"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			move, err := ChooseSharpMove(pos)
			if err != nil {
				t.Fatalf("ChooseSharpMove: %v", err)
			}
			if move.String() != tc.want {
				t.Errorf("ChooseSharpMove = %s, want %s", move, tc.want)
			}
		})
	}
}

func TestChooseSharpMoveNoLegalMoves(t *testing.T) {
	for _, fen := range []string{
		"R6k/6pp/8/8/8/8/8/K7 b - - 0 1", // checkmate
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", // stalemate
	} {
		move, err := ChooseSharpMove(mustParse(t, fen))
		if !errors.Is(err, ErrNoLegalMoves) {
			t.Errorf("%s: err = %v, want ErrNoLegalMoves", fen, err)
		}
		if move != board.NoMove {
			t.Errorf("%s: move = %v, want NoMove", fen, move)
		}
	}
}

func TestChooseSharpMoveKingless(t *testing.T) {
	// The side to move has no king.
	for _, fen := range []string{
		"8/8/8/8/8/8/4R3/4K3 b",
		"4k3/8/8/8/8/8/4R3/8 w",
	} {
		move, err := ChooseSharpMove(mustParse(t, fen))
		if !errors.Is(err, board.ErrIllegalPosition) {
			t.Errorf("%s: err = %v, want ErrIllegalPosition", fen, err)
		}
		if move != board.NoMove {
			t.Errorf("%s: move = %v, want NoMove", fen, move)
		}
	}
}

func TestChooseSharpMoveReplierKingless(t *testing.T) {
	// Black has no king, so every White move leaves zero replies and the
	// first generated move wins.
	move, err := ChooseSharpMove(mustParse(t, "8/8/8/8/8/8/4R3/4K3 w"))
	if err != nil {
		t.Fatalf("ChooseSharpMove: %v", err)
	}
	if move.String() != "e2e3" {
		t.Errorf("ChooseSharpMove = %s, want e2e3", move)
	}
}

func TestSafeReplyCount(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want int
	}{
		// Four king moves, each leaving Black a rook down.
		{"after Rxe4", "4k3/8/8/8/4r3/8/4R3/4K3 w - - 0 1", "e2e4", 4},
		// Rxe3 wins material back; the other eight replies do not.
		{"after Re3", "4k3/8/8/8/4r3/8/4R3/4K3 w - - 0 1", "e2e3", 8},
		{"after Re3 lone king", "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1", "e2e3", 4},
		// The black king has been captured.
		{"after Rxe8", "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1", "e2e8", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			m, err := board.ParseMove(tc.move)
			if err != nil {
				t.Fatal(err)
			}
			next := pos.ApplyMove(m)
			got, err := SafeReplyCount(next, next.SideToMove)
			if err != nil {
				t.Fatalf("SafeReplyCount: %v", err)
			}
			if got != tc.want {
				t.Errorf("SafeReplyCount = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAnalyseCandidates(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	a, err := Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}

	legal, _ := pos.LegalMoves()
	if len(a.Candidates) != legal.Len() {
		t.Fatalf("%d candidates, want %d", len(a.Candidates), legal.Len())
	}
	for i, c := range a.Candidates {
		if c.Move != legal.Get(i) {
			t.Errorf("candidate %d = %v, want %v", i, c.Move, legal.Get(i))
		}
		if c.SafeReplies > c.Replies {
			t.Errorf("%v: %d safe of %d replies", c.Move, c.SafeReplies, c.Replies)
		}
		if c.SafeReplies < a.SafeReplies {
			t.Errorf("%v has fewer safe replies than the chosen move", c.Move)
		}
	}

	best, ok := a.Best()
	if !ok || best.Move != a.Move || best.SafeReplies != 0 {
		t.Errorf("Best() = %+v, %v", best, ok)
	}
	if a.Nodes == 0 {
		t.Error("Nodes should count generated positions")
	}
}

func TestTieBreakFirstMove(t *testing.T) {
	// Lone kings: every king move leaves the opponent only material-neutral
	// replies, so the first generated move must win.
	pos := mustParse(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	legal, err := pos.LegalMoves()
	if err != nil {
		t.Fatal(err)
	}

	a, err := Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}
	lowest := a.Candidates[0].SafeReplies
	for _, c := range a.Candidates {
		if c.SafeReplies < lowest {
			lowest = c.SafeReplies
		}
	}
	for _, c := range a.Candidates {
		if c.SafeReplies == lowest {
			if a.Move != c.Move {
				t.Errorf("chose %v, first minimum is %v", a.Move, c.Move)
			}
			break
		}
	}
	if !legal.Contains(a.Move) {
		t.Errorf("chosen move %v is not legal", a.Move)
	}
}

func TestMaterialScore(t *testing.T) {
	tests := []struct {
		fen  string
		want int
	}{
		{board.StartFEN, 0},
		{"4k3/8/8/8/4r3/8/4R3/4K3 w", 0},
		{"4k3/8/8/8/8/8/4R3/4K3 w", 5},
		{"4k3/8/8/8/8/8/8/3QK3 b", 9},
		{"rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w", 9},
		{"4k3/pppp4/8/8/8/8/8/4K3 w", -4},
		{"8/8/8/8/8/8/8/8 w", 0},
	}
	for _, tc := range tests {
		pos := mustParse(t, tc.fen)
		if got := MaterialScore(pos); got != tc.want {
			t.Errorf("MaterialScore(%s) = %d, want %d", tc.fen, got, tc.want)
		}
		if got := MaterialScore(pos.ColorFlipped()); got != -tc.want {
			t.Errorf("MaterialScore(flipped %s) = %d, want %d", tc.fen, got, -tc.want)
		}
	}
}

func TestRelativeScore(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/8/8/8/4R3/4K3 b")
	if got := RelativeScore(pos, board.White); got != 5 {
		t.Errorf("white view = %d, want 5", got)
	}
	if got := RelativeScore(pos, board.Black); got != -5 {
		t.Errorf("black view = %d, want -5", got)
	}
	if got := Evaluate(pos); got != -5 {
		t.Errorf("Evaluate = %d, want -5", got)
	}
	if ScoreToString(5) != "+5" || ScoreToString(-3) != "-3" || ScoreToString(0) != "0" {
		t.Error("ScoreToString formatting")
	}
}
