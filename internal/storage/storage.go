package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Storage keys
const (
	keyPreferences   = "preferences"
	keyFirstLaunch   = "first_launch"
	prefixAnalysis   = "analysis/key/"
	prefixAnalysisID = "analysis/id/"
)

// ErrNotFound is returned when no record exists for a key or ID.
var ErrNotFound = errors.New("not found")

// Preferences stores viewer settings
type Preferences struct {
	FlipBoard      bool      `json:"flip_board"`
	ShowCandidates bool      `json:"show_candidates"`
	LastFEN        string    `json:"last_fen"`
	LastPlayed     time.Time `json:"last_played"`
}

// DefaultPreferences returns default viewer preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		FlipBoard:      false,
		ShowCandidates: true,
		LastPlayed:     time.Now(),
	}
}

// CandidateRecord is the stored form of one searched root move.
type CandidateRecord struct {
	Move        string `json:"move"`
	SafeReplies int    `json:"safe_replies"`
	Replies     int    `json:"replies"`
	Material    int    `json:"material"`
}

// AnalysisRecord is the stored form of a sharp-move analysis.
type AnalysisRecord struct {
	ID          uuid.UUID         `json:"id"`
	Key         string            `json:"key"` // placement and side to move
	FEN         string            `json:"fen"`
	Move        string            `json:"move"`
	SafeReplies int               `json:"safe_replies"`
	Nodes       uint64            `json:"nodes"`
	Candidates  []CandidateRecord `json:"candidates"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Options configures how the database is opened.
type Options struct {
	Dir      string      // database directory; empty selects DatabaseDir
	InMemory bool        // keep everything in memory (Dir is ignored)
	Logger   logr.Logger // receives badger's own log output
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log logr.Logger
}

// NewStorage opens the database in the default data directory.
func NewStorage() (*Storage, error) {
	return Open(Options{})
}

// Open creates a new storage instance
func Open(opts Options) (*Storage, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := opts.Dir
		if dir == "" {
			var err error
			if dir, err = DatabaseDir(); err != nil {
				return nil, err
			}
		}
		bopts = badger.DefaultOptions(dir)
	}
	bopts = bopts.WithLogger(newBadgerLogger(opts.Logger))

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Storage{db: db, log: opts.Logger.WithName("storage")}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	var firstLaunch bool = true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			firstLaunch = true
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves viewer preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.putJSON(keyPreferences, prefs)
}

// LoadPreferences loads viewer preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	err := s.getJSON(keyPreferences, prefs)
	if errors.Is(err, ErrNotFound) {
		return prefs, nil // Use defaults
	}
	return prefs, err
}

// SaveAnalysis stores rec under its position key. A missing ID or creation
// time is filled in. Saving the same key again replaces the record.
func (s *Storage) SaveAnalysis(rec *AnalysisRecord) error {
	if rec.Key == "" {
		return errors.New("analysis record has no key")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		// Drop the ID index of a record being replaced.
		if item, err := txn.Get([]byte(prefixAnalysis + rec.Key)); err == nil {
			var old AnalysisRecord
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &old) }); err == nil && old.ID != rec.ID {
				if err := txn.Delete([]byte(prefixAnalysisID + old.ID.String())); err != nil {
					return err
				}
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set([]byte(prefixAnalysis+rec.Key), data); err != nil {
			return err
		}
		return txn.Set([]byte(prefixAnalysisID+rec.ID.String()), []byte(rec.Key))
	})
	if err != nil {
		return fmt.Errorf("save analysis %s: %w", rec.ID, err)
	}

	s.log.V(1).Info("saved analysis", "id", rec.ID, "key", rec.Key)
	return nil
}

// LoadAnalysis returns the record stored for a position key.
func (s *Storage) LoadAnalysis(key string) (*AnalysisRecord, error) {
	rec := &AnalysisRecord{}
	if err := s.getJSON(prefixAnalysis+key, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AnalysisByID returns the record with the given ID.
func (s *Storage) AnalysisByID(id uuid.UUID) (*AnalysisRecord, error) {
	var key string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixAnalysisID + id.String()))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			key = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.LoadAnalysis(key)
}

// ListAnalyses returns up to limit records ordered by key (all if limit <= 0).
func (s *Storage) ListAnalyses(limit int) ([]*AnalysisRecord, error) {
	var out []*AnalysisRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixAnalysis)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec := &AnalysisRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		return nil
	})

	return out, err
}

// ClearAnalyses removes every stored analysis.
func (s *Storage) ClearAnalyses() error {
	for _, prefix := range []string{prefixAnalysis, prefixAnalysisID} {
		if err := s.db.DropPrefix([]byte(prefix)); err != nil {
			return fmt.Errorf("clear analyses: %w", err)
		}
	}
	return nil
}

func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Storage) getJSON(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
