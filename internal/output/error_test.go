package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuddySheep/Shamirs-Leak/internal/output"
	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

func TestFormatErrorTextRecoveryError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := recoveryerr.WithSuggestion(
		recoveryerr.WithDetails(recoveryerr.ErrShareIndexOutOfRange, map[string]string{"index": "200"}),
		"valid indices are 1..=15",
	)

	require.NoError(t, output.FormatError(&buf, err, output.FormatText))

	text := buf.String()
	assert.Contains(t, text, "share index out of range")
	assert.Contains(t, text, "index: 200")
	assert.Contains(t, text, "valid indices are 1..=15")
}

func TestFormatErrorJSONRecoveryError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := recoveryerr.ErrDuplicateShareIndex

	require.NoError(t, output.FormatError(&buf, err, output.FormatJSON))

	var got output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "DUPLICATE_SHARE_INDEX", got.Error.Code)
	assert.Equal(t, recoveryerr.ExitInvariant, got.Error.ExitCode)
}

func TestFormatErrorGenericError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, errors.New("boom"), output.FormatJSON))

	var got output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "GENERAL_ERROR", got.Error.Code)
	assert.Equal(t, "boom", got.Error.Message)
}

func TestFormatErrorNilIsNoop(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, nil, output.FormatText))
	assert.Empty(t, buf.String())
}

func TestFormatSuccessText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.FormatSuccess(&buf, "recovered share 3", output.FormatText))
	assert.Equal(t, "recovered share 3\n", buf.String())
}

func TestFormatSuccessJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.FormatSuccess(&buf, "recovered share 3", output.FormatJSON))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "success", got["status"])
	assert.Equal(t, "recovered share 3", got["message"])
}
