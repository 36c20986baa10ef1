package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuddySheep/Shamirs-Leak/internal/output"
)

type diffResult struct {
	PrefixLen int     `json:"prefix_len"`
	Score     float64 `json:"score"`
}

func TestFormatterPrintText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	require.NoError(t, f.Print("zpub6abc"))
	assert.Equal(t, "zpub6abc\n", buf.String())
}

func TestFormatterPrintJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)

	require.NoError(t, f.Print(diffResult{PrefixLen: 6, Score: 0.857}))

	var got diffResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 6, got.PrefixLen)
}

func TestFormatterIsJSON(t *testing.T) {
	t.Parallel()

	assert.True(t, output.NewFormatter(output.FormatJSON, &bytes.Buffer{}).IsJSON())
	assert.False(t, output.NewFormatter(output.FormatText, &bytes.Buffer{}).IsJSON())
}

func TestDetectFormatExplicitOverridesAuto(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatJSON))
	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
}

func TestDetectFormatNonTTYDefaultsJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatAuto))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, output.FormatJSON, output.ParseFormat("json"))
	assert.Equal(t, output.FormatText, output.ParseFormat("TEXT"))
	assert.Equal(t, output.FormatAuto, output.ParseFormat("whatever"))
}
