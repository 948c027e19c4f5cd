// Package history records scored practice attempts.
package history

import (
	"context"
	"sort"
	"sync"
)

// Key is the fixed key the full history document is stored under.
const Key = "wordHistory"

// Entry is one recorded practice attempt.
type Entry struct {
	Word       string  `json:"word"`
	Sentence   string  `json:"sentence"`
	Score      float64 `json:"score"`
	Difficulty string  `json:"difficulty"`
	// Timestamp is an RFC 3339 string in UTC.
	Timestamp string `json:"timestamp"`
}

// Store is an append-only ordered log of entries.
type Store interface {
	ReadAll(ctx context.Context) ([]Entry, error)
	Append(ctx context.Context, e Entry) error
}

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) ReadAll(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryStore) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
	return nil
}

// Last returns the final n entries of es (all of them when n <= 0 or n
// exceeds the length).
func Last(es []Entry, n int) []Entry {
	if n <= 0 || n >= len(es) {
		return es
	}
	return es[len(es)-n:]
}

// DifficultyStats summarizes the attempts of one difficulty tier.
type DifficultyStats struct {
	Difficulty string
	Attempts   int
	Average    float64
	Best       float64
}

// Summary aggregates a history log.
type Summary struct {
	Attempts int
	Average  float64
	Best     float64
	// ByDifficulty is sorted by difficulty name.
	ByDifficulty []DifficultyStats
}

// Summarize computes per-difficulty and overall statistics.
func Summarize(es []Entry) Summary {
	var s Summary
	if len(es) == 0 {
		return s
	}
	byDiff := make(map[string]*DifficultyStats)
	sums := make(map[string]float64)
	var total float64
	for i, e := range es {
		total += e.Score
		if i == 0 || e.Score > s.Best {
			s.Best = e.Score
		}
		ds, ok := byDiff[e.Difficulty]
		if !ok {
			ds = &DifficultyStats{Difficulty: e.Difficulty, Best: e.Score}
			byDiff[e.Difficulty] = ds
		}
		ds.Attempts++
		sums[e.Difficulty] += e.Score
		if e.Score > ds.Best {
			ds.Best = e.Score
		}
	}
	s.Attempts = len(es)
	s.Average = total / float64(len(es))
	for name, ds := range byDiff {
		ds.Average = sums[name] / float64(ds.Attempts)
		s.ByDifficulty = append(s.ByDifficulty, *ds)
	}
	sort.Slice(s.ByDifficulty, func(i, j int) bool {
		return s.ByDifficulty[i].Difficulty < s.ByDifficulty[j].Difficulty
	})
	return s
}
