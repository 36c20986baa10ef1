package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

func TestRecoveryError_Error(t *testing.T) {
	t.Parallel()

	err := &recoveryerr.RecoveryError{
		Code:    "TEST",
		Message: "something failed",
	}
	assert.Equal(t, "something failed", err.Error())

	wrapped := &recoveryerr.RecoveryError{
		Code:    "TEST",
		Message: "something failed",
		Cause:   errors.New("root cause"),
	}
	assert.Equal(t, "something failed: root cause", wrapped.Error())
}

func TestRecoveryError_Is(t *testing.T) {
	t.Parallel()

	a := &recoveryerr.RecoveryError{Code: "SAME"}
	b := &recoveryerr.RecoveryError{Code: "SAME"}
	c := &recoveryerr.RecoveryError{Code: "DIFFERENT"}

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	wrapped := recoveryerr.Wrap(recoveryerr.ErrShareIndexZero, "validating share %d", 1)
	require.Error(t, wrapped)
	assert.Contains(t, wrapped.Error(), "validating share 1")
	assert.Equal(t, recoveryerr.ExitInvariant, recoveryerr.ExitCode(wrapped))
	assert.Equal(t, "SHARE_INDEX_ZERO", recoveryerr.Code(wrapped))

	assert.Nil(t, recoveryerr.Wrap(nil, "unused"))
}

func TestWithDetailsAndSuggestion(t *testing.T) {
	t.Parallel()

	err := recoveryerr.WithDetails(recoveryerr.ErrDuplicateShareIndex, map[string]string{"index": "5"})
	re := &recoveryerr.RecoveryError{}
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "5", re.Details["index"])

	withSuggestion := recoveryerr.WithSuggestion(err, "use two shares with different indices")
	re2 := &recoveryerr.RecoveryError{}
	require.True(t, errors.As(withSuggestion, &re2))
	assert.Equal(t, "use two shares with different indices", re2.Suggestion)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, recoveryerr.ExitSuccess, recoveryerr.ExitCode(nil))
	assert.Equal(t, recoveryerr.ExitInvariant, recoveryerr.ExitCode(recoveryerr.ErrInvalidProbability))
	assert.Equal(t, recoveryerr.ExitGeneral, recoveryerr.ExitCode(errors.New("plain")))
}
