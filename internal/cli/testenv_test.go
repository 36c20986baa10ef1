package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MuddySheep/Shamirs-Leak/internal/config"
	"github.com/MuddySheep/Shamirs-Leak/internal/output"
)

// setupTestEnv swaps in a temp-dir config and a null logger/text
// formatter for the duration of a test, restoring the package globals
// on cleanup.
func setupTestEnv(t *testing.T) (string, func()) {
	t.Helper()

	origCfg := cfg
	origLogger := logger
	origFormatter := formatter

	tmpDir, err := os.MkdirTemp("", "shamirleak-cli-test")
	require.NoError(t, err)

	testCfg := config.Defaults()
	testCfg.Home = tmpDir
	cfg = testCfg

	logger = config.NullLogger()
	formatter = output.NewFormatter(output.FormatText, os.Stdout)

	cleanup := func() {
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
		_ = os.RemoveAll(tmpDir)
	}

	return tmpDir, cleanup
}
