package attemptlog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/MuddySheep/Shamirs-Leak/internal/cryptoutil"
	"github.com/MuddySheep/Shamirs-Leak/internal/zpubdiff"
)

// EncryptedSink buffers every Markdown record in memory and, on Close,
// encrypts the accumulated trail with an age scrypt recipient so the
// forensic log itself stays confidential at rest.
type EncryptedSink struct {
	mu         sync.Mutex
	passphrase string
	path       string
	buf        strings.Builder
	attempt    uint64
}

// NewEncryptedSink returns a sink that writes an age-encrypted blob to
// path (conventionally "<log>.md.age") when Close is called.
func NewEncryptedSink(path, passphrase string) *EncryptedSink {
	return &EncryptedSink{path: path, passphrase: passphrase}
}

// Record buffers one attempt record.
func (s *EncryptedSink) Record(candidateZpub string, metrics zpubdiff.Metrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempt++
	fmt.Fprintf(&s.buf,
		"- attempt %d: `%s` prefix_len=%d hamming=%d similarity=%.4f\n",
		s.attempt, candidateZpub, metrics.PrefixLen, metrics.HammingDistance, metrics.Similarity,
	)
	return nil
}

// Close encrypts the buffered trail and writes it to the configured path.
func (s *EncryptedSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ciphertext, err := cryptoutil.Encrypt([]byte(s.buf.String()), s.passphrase)
	if err != nil {
		return fmt.Errorf("encrypting attempt log: %w", err)
	}

	if err := os.WriteFile(s.path, ciphertext, 0o600); err != nil { //nolint:gosec // G306: operator-supplied path, matches attempt-log convention
		return fmt.Errorf("writing encrypted attempt log: %w", err)
	}

	return nil
}
