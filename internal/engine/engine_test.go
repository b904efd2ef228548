package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hailam/sharpmove/internal/board"
	"github.com/hailam/sharpmove/internal/storage"
)

func mustParse(t *testing.T, fen string) board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func newTestEngine(t *testing.T, store Store) *Engine {
	t.Helper()
	eng, err := NewEngine(Options{CacheEntries: 128, Store: store})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(eng.Close)
	return eng
}

// memStore is a Store that counts calls.
type memStore struct {
	mu    sync.Mutex
	recs  map[string]*storage.AnalysisRecord
	loads int
	saves int
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[string]*storage.AnalysisRecord)}
}

func (m *memStore) LoadAnalysis(key string) (*storage.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	rec, ok := m.recs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return rec, nil
}

func (m *memStore) SaveAnalysis(rec *storage.AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.recs[rec.Key] = rec
	return nil
}

func TestEngineSearch(t *testing.T) {
	eng := newTestEngine(t, nil)

	move, err := eng.Search(board.NewPosition())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if move == board.NoMove {
		t.Error("Search returned NoMove for starting position")
	}
	t.Logf("Best move: %s", move.String())
}

func TestEngineMemoryCache(t *testing.T) {
	eng := newTestEngine(t, nil)
	pos := mustParse(t, "4k3/8/8/8/4r3/8/4R3/4K3 w - - 0 1")

	first, err := eng.Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}
	if first.Source != SourceSearch {
		t.Errorf("first Source = %v, want search", first.Source)
	}
	nodes := eng.Nodes()
	eng.cache.Wait()

	second, err := eng.Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}
	if second.Source != SourceMemory {
		t.Errorf("second Source = %v, want memory", second.Source)
	}
	if second.Move != first.Move {
		t.Errorf("cached move %v, want %v", second.Move, first.Move)
	}
	if eng.Nodes() != nodes {
		t.Errorf("cache hit searched %d extra nodes", eng.Nodes()-nodes)
	}
}

func TestEngineCacheIsolation(t *testing.T) {
	eng := newTestEngine(t, nil)
	pos := mustParse(t, "4k3/8/8/8/4r3/8/4R3/4K3 w - - 0 1")

	first, err := eng.Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]Candidate(nil), first.Candidates...)
	eng.cache.Wait()

	// Editing a returned analysis must not reach the cached copy.
	first.Candidates[0].SafeReplies = -1
	hit, err := eng.Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}
	hit.Candidates[0], hit.Candidates[1] = hit.Candidates[1], hit.Candidates[0]

	again, err := eng.Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}
	if again.Source != SourceMemory {
		t.Fatalf("Source = %v, want memory", again.Source)
	}
	if diff := cmp.Diff(want, again.Candidates); diff != "" {
		t.Errorf("cached candidates changed (-want +got):\n%s", diff)
	}
}

func TestEngineCacheDisabled(t *testing.T) {
	store := newMemStore()
	eng := newTestEngine(t, store)
	eng.SetCache(false)
	pos := board.NewPosition()

	for i := 0; i < 2; i++ {
		a, err := eng.Analyse(pos)
		if err != nil {
			t.Fatal(err)
		}
		if a.Source != SourceSearch {
			t.Errorf("run %d Source = %v, want search", i, a.Source)
		}
		eng.cache.Wait()
	}
	if store.loads != 0 || store.saves != 0 {
		t.Errorf("store used with cache disabled: %d loads, %d saves", store.loads, store.saves)
	}
}

func TestEngineStore(t *testing.T) {
	store := newMemStore()
	pos := mustParse(t, "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1")

	writer := newTestEngine(t, store)
	want, err := writer.Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}

	// A fresh engine has an empty memory cache and must read the store.
	reader := newTestEngine(t, store)
	got, err := reader.Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}
	if got.Source != SourceStore {
		t.Errorf("Source = %v, want store", got.Source)
	}
	want.Source = SourceStore
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b board.Move) bool { return a == b })); diff != "" {
		t.Errorf("stored analysis mismatch (-want +got):\n%s", diff)
	}
	if reader.Nodes() != 0 {
		t.Errorf("store hit searched %d nodes", reader.Nodes())
	}
}

func TestEngineWithBadger(t *testing.T) {
	st, err := storage.Open(storage.Options{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	pos := mustParse(t, "4k3/8/8/8/4r3/8/4R3/4K3 w - - 0 1")
	if _, err := newTestEngine(t, st).Analyse(pos); err != nil {
		t.Fatal(err)
	}

	rec, err := st.LoadAnalysis(PositionKey(pos))
	if err != nil {
		t.Fatalf("LoadAnalysis: %v", err)
	}
	if rec.Move != "e2e4" {
		t.Errorf("stored move = %s, want e2e4", rec.Move)
	}

	got, err := newTestEngine(t, st).Analyse(pos)
	if err != nil {
		t.Fatal(err)
	}
	if got.Source != SourceStore || got.Move.String() != "e2e4" {
		t.Errorf("reloaded analysis = %v from %v", got.Move, got.Source)
	}
}

func TestEngineOnInfo(t *testing.T) {
	eng := newTestEngine(t, nil)
	var infos []SearchInfo
	eng.OnInfo = func(info SearchInfo) { infos = append(infos, info) }

	pos := mustParse(t, "4k3/8/8/8/4r3/8/4R3/4K3 w - - 0 1")
	if _, err := eng.Analyse(pos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("OnInfo called %d times, want 1", len(infos))
	}
	info := infos[0]
	if info.Move.String() != "e2e4" || info.Score != 5 || info.SafeReplies != 4 {
		t.Errorf("info = %+v", info)
	}
}

func TestEngineErrors(t *testing.T) {
	eng := newTestEngine(t, newMemStore())

	_, err := eng.Analyse(mustParse(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1"))
	if !errors.Is(err, ErrNoLegalMoves) {
		t.Errorf("checkmate: %v, want ErrNoLegalMoves", err)
	}

	_, err = eng.Analyse(mustParse(t, "8/8/8/8/8/8/4R3/4K3 b"))
	if !errors.Is(err, board.ErrIllegalPosition) {
		t.Errorf("kingless: %v, want ErrIllegalPosition", err)
	}
}

func TestAnalyseBatch(t *testing.T) {
	eng := newTestEngine(t, nil)
	fens := []string{
		"4k3/8/8/8/4r3/8/4R3/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/4R3/4K3 w - - 0 1",
		"R6k/6pp/8/8/8/8/8/K7 b - - 0 1",
		"not a fen",
		board.StartFEN,
	}

	results, err := eng.AnalyseBatch(context.Background(), fens, 2)
	if err != nil {
		t.Fatalf("AnalyseBatch: %v", err)
	}
	if len(results) != len(fens) {
		t.Fatalf("got %d results, want %d", len(results), len(fens))
	}

	if got := results[0].Analysis.Move.String(); got != "e2e4" {
		t.Errorf("result 0 move = %s, want e2e4", got)
	}
	if got := results[1].Analysis.Move.String(); got != "e2e8" {
		t.Errorf("result 1 move = %s, want e2e8", got)
	}
	if !errors.Is(results[2].Err, ErrNoLegalMoves) {
		t.Errorf("result 2 err = %v, want ErrNoLegalMoves", results[2].Err)
	}
	if !errors.Is(results[3].Err, board.ErrInvalidPlacement) {
		t.Errorf("result 3 err = %v, want ErrInvalidPlacement", results[3].Err)
	}
	if results[4].Err != nil {
		t.Errorf("result 4 err = %v", results[4].Err)
	}
	for i, r := range results {
		if r.FEN != fens[i] {
			t.Errorf("result %d FEN = %q", i, r.FEN)
		}
	}
}

func TestAnalyseBatchCancelled(t *testing.T) {
	eng := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := eng.AnalyseBatch(ctx, []string{board.StartFEN, board.StartFEN}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("AnalyseBatch error = %v, want context.Canceled", err)
	}
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d err = %v", i, r.Err)
		}
	}
}

func TestEnginePerft(t *testing.T) {
	eng := newTestEngine(t, nil)
	pos := board.NewPosition()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{0, 1},
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, tc := range tests {
		got, err := eng.Perft(pos, tc.depth)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}

	entries, total, err := Divide(pos, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 20 || total != 400 {
		t.Errorf("Divide(2) = %d entries, %d nodes", len(entries), total)
	}
	for _, e := range entries {
		if e.Nodes != 20 {
			t.Errorf("%s: %d nodes, want 20", e.Move, e.Nodes)
		}
	}
}
