package board

import (
	"slices"
	"testing"
)

func TestToSAN(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{"4k3/8/8/3p4/4P3/8/8/4K3 w", "e4d5", "exd5"},
		{"4k3/8/8/8/4r3/8/4R3/4K3 w", "e2e4", "Rxe4+"},
		{"6k1/5ppp/8/8/8/8/8/R5K1 w", "a1a8", "Ra8#"},
		{"4k3/8/8/8/8/8/8/1N2KN2 w", "b1d2", "Nbd2"},
		{"4k3/8/8/8/8/8/8/1N2KN2 w", "f1d2", "Nfd2"},
		{"4k3/8/8/8/8/1N6/8/1N2K3 w", "b1d2", "N1d2"},
		{"4k3/8/8/8/8/1N6/8/1N2K3 w", "b3d2", "N3d2"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			m, err := ParseMove(tc.move)
			if err != nil {
				t.Fatal(err)
			}
			if got := m.ToSAN(pos); got != tc.want {
				t.Errorf("ToSAN(%s) = %q, want %q", tc.move, got, tc.want)
			}
		})
	}
}

func TestMovesToSAN(t *testing.T) {
	var moves []Move
	for _, s := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		moves = append(moves, m)
	}

	got := MovesToSAN(NewPosition(), moves)
	want := []string{"e4", "e5", "Nf3", "Nc6"}
	if !slices.Equal(got, want) {
		t.Errorf("MovesToSAN = %v, want %v", got, want)
	}
}
