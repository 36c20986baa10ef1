// Package attemptlog is the forensic observer fed one record per
// non-matching search attempt: an append-only Markdown narrative plus
// a sibling CSV file for downstream analysis tooling.
package attemptlog

import (
	"fmt"
	"os"
	"sync"

	"github.com/MuddySheep/Shamirs-Leak/internal/zpubdiff"
)

// Sink receives one record per attempt that did not produce a match.
type Sink interface {
	Record(candidateZpub string, metrics zpubdiff.Metrics) error
	Close() error
}

// csvHeader is written once when the CSV sibling is created.
const csvHeader = "attempt,prefix_len,hamming_distance,similarity\n"

// FileSink writes Markdown (append) and CSV (truncated at construction,
// then appended) attempt records under a mutex.
type FileSink struct {
	mu      sync.Mutex
	md      *os.File
	csv     *os.File
	attempt uint64
}

// NewFileSink opens mdPath for append and csvPath truncated with a
// fresh header, creating either file if absent.
func NewFileSink(mdPath, csvPath string) (*FileSink, error) {
	md, err := os.OpenFile(mdPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // G304: path is operator-supplied config, not user input over a trust boundary
	if err != nil {
		return nil, fmt.Errorf("opening attempt log markdown file: %w", err)
	}

	csv, err := os.OpenFile(csvPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) //nolint:gosec // G304: see above
	if err != nil {
		_ = md.Close()
		return nil, fmt.Errorf("opening attempt log csv file: %w", err)
	}

	if _, err := csv.WriteString(csvHeader); err != nil {
		_ = md.Close()
		_ = csv.Close()
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	return &FileSink{md: md, csv: csv}, nil
}

// Record appends one attempt to both the Markdown narrative and the CSV.
func (s *FileSink) Record(candidateZpub string, metrics zpubdiff.Metrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempt++

	line := fmt.Sprintf(
		"- attempt %d: `%s` prefix_len=%d hamming=%d similarity=%.4f\n",
		s.attempt, candidateZpub, metrics.PrefixLen, metrics.HammingDistance, metrics.Similarity,
	)
	if _, err := s.md.WriteString(line); err != nil {
		return fmt.Errorf("writing markdown record: %w", err)
	}

	row := fmt.Sprintf("%d,%d,%d,%.4f\n", s.attempt, metrics.PrefixLen, metrics.HammingDistance, metrics.Similarity)
	if _, err := s.csv.WriteString(row); err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}

	return nil
}

// Close flushes and closes both underlying files.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mdErr := s.md.Close()
	csvErr := s.csv.Close()
	if mdErr != nil {
		return mdErr
	}
	return csvErr
}

// NopSink discards every record; used when no attempt-log path is configured.
type NopSink struct{}

// Record implements Sink by discarding the record.
func (NopSink) Record(string, zpubdiff.Metrics) error { return nil }

// Close implements Sink as a no-op.
func (NopSink) Close() error { return nil }
