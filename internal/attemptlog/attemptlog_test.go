package attemptlog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuddySheep/Shamirs-Leak/internal/attemptlog"
	"github.com/MuddySheep/Shamirs-Leak/internal/cryptoutil"
	"github.com/MuddySheep/Shamirs-Leak/internal/zpubdiff"
)

func TestFileSinkWritesMarkdownAndCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mdPath := filepath.Join(dir, "attempts.md")
	csvPath := filepath.Join(dir, "attempts.csv")

	sink, err := attemptlog.NewFileSink(mdPath, csvPath)
	require.NoError(t, err)

	require.NoError(t, sink.Record("zpub6abc", zpubdiff.Metrics{PrefixLen: 6, HammingDistance: 1, Similarity: 0.857}))
	require.NoError(t, sink.Record("zpub6abd", zpubdiff.Metrics{PrefixLen: 5, HammingDistance: 2, Similarity: 0.7}))
	require.NoError(t, sink.Close())

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "attempt 1")
	assert.Contains(t, string(md), "zpub6abc")

	csv, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(csv), "attempt,prefix_len,hamming_distance,similarity")
	assert.Contains(t, string(csv), "1,6,1,0.8570")
}

func TestFileSinkCSVTruncatedOnConstruct(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mdPath := filepath.Join(dir, "attempts.md")
	csvPath := filepath.Join(dir, "attempts.csv")

	require.NoError(t, os.WriteFile(csvPath, []byte("stale data from a previous run\n"), 0o600))

	sink, err := attemptlog.NewFileSink(mdPath, csvPath)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	csv, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.NotContains(t, string(csv), "stale data")
}

func TestNopSinkDiscardsRecords(t *testing.T) {
	t.Parallel()

	sink := attemptlog.NopSink{}
	assert.NoError(t, sink.Record("zpub6abc", zpubdiff.Metrics{}))
	assert.NoError(t, sink.Close())
}

func TestEncryptedSinkFlushesOnClose(t *testing.T) {
	t.Parallel()

	cryptoutil.SetScryptWorkFactor(10)

	dir := t.TempDir()
	path := filepath.Join(dir, "attempts.md.age")
	passphrase := "trail-passphrase" // gitleaks:allow

	sink := attemptlog.NewEncryptedSink(path, passphrase)
	require.NoError(t, sink.Record("zpub6abc", zpubdiff.Metrics{PrefixLen: 6, HammingDistance: 1, Similarity: 0.857}))
	require.NoError(t, sink.Close())

	ciphertext, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, ciphertext)

	plaintext, err := cryptoutil.Decrypt(ciphertext, passphrase)
	require.NoError(t, err)
	assert.Contains(t, string(plaintext), "zpub6abc")
}

var _ attemptlog.Sink = (*attemptlog.FileSink)(nil)
var _ attemptlog.Sink = (*attemptlog.EncryptedSink)(nil)
var _ attemptlog.Sink = attemptlog.NopSink{}
