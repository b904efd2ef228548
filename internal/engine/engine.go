package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/sharpmove/internal/board"
	"github.com/hailam/sharpmove/internal/storage"
)

// Source tells where an analysis came from.
type Source int

const (
	SourceSearch Source = iota // computed by this call
	SourceMemory               // in-memory cache
	SourceStore                // persistent store
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceMemory:
		return "memory"
	case SourceStore:
		return "store"
	default:
		return "search"
	}
}

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Key         string
	Move        board.Move
	SafeReplies int
	Candidates  int
	Score       int // material after the move, from the mover's side
	Nodes       uint64
	Time        time.Duration
	Source      Source
}

// Store persists analyses across runs. *storage.Storage implements it.
type Store interface {
	LoadAnalysis(key string) (*storage.AnalysisRecord, error)
	SaveAnalysis(rec *storage.AnalysisRecord) error
}

// Options configures an Engine.
type Options struct {
	CacheEntries int64       // in-memory cache capacity (0 = default)
	Store        Store       // optional persistent store
	Logger       logr.Logger // zero value discards
}

// DefaultCacheEntries is the in-memory cache capacity used when none is given.
const DefaultCacheEntries = 1 << 14

// Engine wraps the sharp-move search with an in-memory cache and an optional
// persistent store. It is safe for concurrent use.
type Engine struct {
	cache    *ristretto.Cache[string, Analysis]
	store    Store
	log      logr.Logger
	useCache atomic.Bool
	nodes    atomic.Uint64

	// Callbacks. OnInfo may be called from several goroutines during
	// AnalyseBatch.
	OnInfo func(SearchInfo)
}

// NewEngine creates a new engine.
func NewEngine(opts Options) (*Engine, error) {
	entries := opts.CacheEntries
	if entries <= 0 {
		entries = DefaultCacheEntries
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, Analysis]{
		NumCounters:        entries * 10,
		MaxCost:            entries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}

	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	e := &Engine{
		cache: cache,
		store: opts.Store,
		log:   log.WithName("engine"),
	}
	e.useCache.Store(true)
	return e, nil
}

// SetCache enables or disables both cache layers.
func (e *Engine) SetCache(enabled bool) {
	e.useCache.Store(enabled)
}

// CacheEnabled reports whether lookups go through the caches.
func (e *Engine) CacheEnabled() bool {
	return e.useCache.Load()
}

// Nodes returns the number of positions generated by searches on this
// engine. Cache hits add nothing.
func (e *Engine) Nodes() uint64 {
	return e.nodes.Load()
}

// Search finds the sharp move for the given position.
func (e *Engine) Search(pos board.Position) (board.Move, error) {
	a, err := e.Analyse(pos)
	if err != nil {
		return board.NoMove, err
	}
	return a.Move, nil
}

// Analyse returns the analysis of pos, consulting the in-memory cache and
// then the store before searching.
func (e *Engine) Analyse(pos board.Position) (Analysis, error) {
	start := time.Now()
	key := PositionKey(pos)

	if a, ok := e.lookup(key); ok {
		e.report(pos, a, time.Since(start))
		return a, nil
	}

	a, err := Analyse(pos)
	if err != nil {
		return a, err
	}
	e.nodes.Add(a.Nodes)

	if e.useCache.Load() {
		e.cache.Set(key, a.clone(), 1)
		if e.store != nil {
			if err := e.store.SaveAnalysis(toRecord(pos, a)); err != nil {
				// A failed write only costs a future search.
				e.log.Error(err, "save analysis", "key", key)
			}
		}
	}

	e.log.V(1).Info("analysed", "key", key, "move", a.Move.String(),
		"safeReplies", a.SafeReplies, "nodes", a.Nodes)
	e.report(pos, a, time.Since(start))
	return a, nil
}

// lookup checks the in-memory cache, then the store.
func (e *Engine) lookup(key string) (Analysis, bool) {
	if !e.useCache.Load() {
		return Analysis{}, false
	}

	if a, ok := e.cache.Get(key); ok && a.Key == key {
		a = a.clone()
		a.Source = SourceMemory
		return a, true
	}

	if e.store == nil {
		return Analysis{}, false
	}

	rec, err := e.store.LoadAnalysis(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			e.log.Error(err, "load analysis", "key", key)
		}
		return Analysis{}, false
	}

	a, err := fromRecord(rec)
	if err != nil || a.Key != key {
		e.log.Info("discarding stored analysis", "key", key, "err", err)
		return Analysis{}, false
	}
	a.Source = SourceStore
	e.cache.Set(key, a.clone(), 1)
	return a, true
}

// clone copies the candidate slice so cached entries are never shared with
// callers.
func (a Analysis) clone() Analysis {
	a.Candidates = slices.Clone(a.Candidates)
	return a
}

func (e *Engine) report(pos board.Position, a Analysis, elapsed time.Duration) {
	if e.OnInfo == nil {
		return
	}
	info := SearchInfo{
		Key:         a.Key,
		Move:        a.Move,
		SafeReplies: a.SafeReplies,
		Candidates:  len(a.Candidates),
		Nodes:       a.Nodes,
		Time:        elapsed,
		Source:      a.Source,
	}
	if best, ok := a.Best(); ok {
		info.Score = best.Material
		if pos.SideToMove == board.Black {
			info.Score = -info.Score
		}
	}
	e.OnInfo(info)
}

// BatchResult is the outcome of one position in AnalyseBatch.
type BatchResult struct {
	FEN      string
	Analysis Analysis
	Err      error
}

// AnalyseBatch analyses independent positions on up to workers goroutines
// (all at once if workers <= 0). Per-position failures are reported in the
// results; the returned error is non-nil only if ctx was cancelled. A search
// that has started always runs to completion.
func (e *Engine) AnalyseBatch(ctx context.Context, fens []string, workers int) ([]BatchResult, error) {
	results := make([]BatchResult, len(fens))
	for i, fen := range fens {
		results[i].FEN = fen
	}

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, fen := range fens {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return err
			}

			pos, err := board.ParseFEN(fen)
			if err != nil {
				results[i].Err = err
				return nil
			}

			results[i].Analysis, results[i].Err = e.Analyse(pos)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Stop is a no-op: a single search always runs to completion.
func (e *Engine) Stop() {}

// Clear empties the in-memory cache. The persistent store is left alone.
func (e *Engine) Clear() {
	e.cache.Clear()
}

// Close releases the cache.
func (e *Engine) Close() {
	e.cache.Close()
}

// Perft performs a perft test (for debugging move generation).
func (e *Engine) Perft(pos board.Position, depth int) (uint64, error) {
	return Perft(pos, depth)
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos board.Position) int {
	return Evaluate(pos)
}
