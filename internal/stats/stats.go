// Package stats collects process-wide search counters: candidates
// tested, mnemonic matches, and the best score seen so far (the search
// driver records the common zpub prefix length as the score). It uses a
// struct of atomic counters with added mutex-guarded best-prefix
// tracking and ASCII table rendering for the search driver's progress
// reporting.
package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MuddySheep/Shamirs-Leak/internal/output"
)

// Stats holds the atomic counters and best-match state for one search run.
type Stats struct {
	totalCandidates atomic.Uint64
	mnemonicMatches atomic.Uint64
	workerCount     atomic.Int64

	mu         sync.Mutex
	bestScore  float64
	bestPrefix string

	start time.Time
}

// New constructs a Stats with its wall-clock start timestamp set to now.
func New() *Stats {
	return &Stats{start: time.Now()}
}

//nolint:gochecknoglobals // lazily-initialized package default singleton
var (
	defaultOnce sync.Once
	defaultInst *Stats
)

// Default returns the lazily-initialized package-level singleton, for
// CLI ergonomics when a caller doesn't want to thread a *Stats through.
func Default() *Stats {
	defaultOnce.Do(func() { defaultInst = New() })
	return defaultInst
}

// SetWorkerCount records the configured worker count for reporting.
func (s *Stats) SetWorkerCount(n int) {
	s.workerCount.Store(int64(n))
}

// IncCandidates increments the total-candidates counter by one.
func (s *Stats) IncCandidates() {
	s.totalCandidates.Add(1)
}

// IncMatches increments the mnemonic-matches counter by one.
func (s *Stats) IncMatches() {
	s.mnemonicMatches.Add(1)
}

// TotalCandidates returns the current candidate count.
func (s *Stats) TotalCandidates() uint64 {
	return s.totalCandidates.Load()
}

// MnemonicMatches returns the current match count.
func (s *Stats) MnemonicMatches() uint64 {
	return s.mnemonicMatches.Load()
}

// UpdateBest compares score against the current best and, if strictly
// greater, stores both the new score and prefix under the lock (a
// compare-then-set, not a lock-free CAS, since the two fields must move
// together).
func (s *Stats) UpdateBest(score float64, prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score > s.bestScore {
		s.bestScore = score
		s.bestPrefix = prefix
	}
}

// Best returns the current best score and prefix.
func (s *Stats) Best() (float64, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestScore, s.bestPrefix
}

// CandidatesPerSecond derives a rate from the wall-clock start time.
func (s *Stats) CandidatesPerSecond() float64 {
	elapsed := time.Since(s.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.totalCandidates.Load()) / elapsed
}

// Report renders an ASCII table summarizing the current counters.
func (s *Stats) Report() string {
	score, prefix := s.Best()

	table := output.NewTable("metric", "value")
	table.AddRow("total_candidates", fmt.Sprintf("%d", s.totalCandidates.Load()))
	table.AddRow("mnemonic_matches", fmt.Sprintf("%d", s.mnemonicMatches.Load()))
	table.AddRow("best_score", fmt.Sprintf("%.4f", score))
	table.AddRow("best_prefix", prefix)
	table.AddRow("workers", fmt.Sprintf("%d", s.workerCount.Load()))
	table.AddRow("candidates_per_sec", fmt.Sprintf("%.1f", s.CandidatesPerSecond()))

	return table.String()
}
