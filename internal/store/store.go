package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/itmlabs/itmview/internal/report"
)

// ErrNoReport indicates no uploaded content and no default report file are
// available. This is the only input condition surfaced to callers; all
// malformed-but-decodable text parses to (possibly empty) collections.
var ErrNoReport = errors.New("no report loaded")

// Snapshot is one fully parsed report. Snapshots are immutable once built;
// a new upload replaces the whole snapshot rather than mutating it.
type Snapshot struct {
	ID       uuid.UUID
	Origin   string // "default" or the uploaded filename
	Size     int
	LoadedAt time.Time
	Analysis report.Analysis
}

// Store holds the current snapshot behind a read lock so replacements are
// atomic with respect to concurrent readers.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
	logger  *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{logger: logger}
}

// Replace parses text and installs it as the current snapshot, fully
// replacing any prior one.
func (s *Store) Replace(text, origin string) *Snapshot {
	snap := &Snapshot{
		ID:       uuid.New(),
		Origin:   origin,
		Size:     len(text),
		LoadedAt: time.Now(),
		Analysis: report.Parse(text),
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	s.logger.Info("report snapshot installed",
		zap.String("id", snap.ID.String()),
		zap.String("origin", origin),
		zap.Int("bytes", snap.Size),
		zap.Int("tickers", len(snap.Analysis.Normal.Tickers)),
		zap.Int("earningsTickers", len(snap.Analysis.Earnings.Tickers)),
		zap.Int("expirations", len(snap.Analysis.Expirations())),
	)
	return snap
}

// Current returns the active snapshot, or ErrNoReport when nothing has been
// loaded yet.
func (s *Store) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoReport
	}
	return s.current, nil
}
