package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-report/internal/weather"
)

var (
	// ErrNotFound is returned when no run matches a lookup.
	ErrNotFound = errors.New("no weather report found")
)

// MemoryStore is a concurrency-safe in-memory history of report runs.
type MemoryStore struct {
	mu sync.RWMutex

	// runs in insertion order, oldest first
	runs []weather.Run

	// retention configuration
	maxHistory int           // max number of runs kept
	maxAge     time.Duration // optional max age of runs

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save appends a run and enforces retention.
func (s *MemoryStore) Save(run weather.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, run)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.runs) > s.maxHistory {
		over := len(s.runs) - s.maxHistory
		s.runs = append([]weather.Run(nil), s.runs[over:]...)
	}

	// Enforce retention by age. The newest run is always kept.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.runs)-1; i++ {
			if !s.runs[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.runs = append([]weather.Run(nil), s.runs[i:]...)
		}
	}
}

// Get returns the run with the given ID.
func (s *MemoryStore) Get(id string) (weather.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.runs) - 1; i >= 0; i-- {
		if s.runs[i].ID == id {
			return s.runs[i], nil
		}
	}
	return weather.Run{}, ErrNotFound
}

// Latest returns the most recently saved run.
func (s *MemoryStore) Latest() (weather.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return weather.Run{}, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

// Range returns all runs generated between from and to (inclusive).
func (s *MemoryStore) Range(from, to time.Time) ([]weather.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []weather.Run
	for _, run := range s.runs {
		if !run.GeneratedAt.Before(from) && !run.GeneratedAt.After(to) {
			result = append(result, run)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
