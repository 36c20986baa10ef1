package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuddySheep/Shamirs-Leak/internal/config"
)

func newConfigTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRunConfigInit_Success(t *testing.T) {
	tmpDir, testCleanup := setupTestEnv(t)
	defer testCleanup()

	cmd, _ := newConfigTestCmd()
	err := runConfigInit(cmd, nil)
	require.NoError(t, err)

	configPath := config.Path(tmpDir)
	_, statErr := os.Stat(configPath)
	assert.NoError(t, statErr, "config file should exist")
}

func TestRunConfigInit_AlreadyExistsWithoutForce(t *testing.T) {
	_, testCleanup := setupTestEnv(t)
	defer testCleanup()

	cmd, _ := newConfigTestCmd()
	require.NoError(t, runConfigInit(cmd, nil))

	configForce = false
	cmd2, _ := newConfigTestCmd()
	err := runConfigInit(cmd2, nil)
	require.Error(t, err)
}

func TestRunConfigInit_ForceOverwrite(t *testing.T) {
	_, testCleanup := setupTestEnv(t)
	defer testCleanup()

	cmd, _ := newConfigTestCmd()
	require.NoError(t, runConfigInit(cmd, nil))

	configForce = true
	defer func() { configForce = false }()

	cmd2, _ := newConfigTestCmd()
	err := runConfigInit(cmd2, nil)
	require.NoError(t, err)
}

func TestRunConfigShow_TextOutput(t *testing.T) {
	_, testCleanup := setupTestEnv(t)
	defer testCleanup()

	cmd, _ := newConfigTestCmd()
	err := runConfigShow(cmd, nil)
	require.NoError(t, err)
}
