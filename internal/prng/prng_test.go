package prng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuddySheep/Shamirs-Leak/internal/prng"
)

func TestGenerateRepeatableAfterReset(t *testing.T) {
	settings := prng.DefaultSettings()

	prng.ResetCallCounter()
	a := prng.Generate(16, settings)

	prng.ResetCallCounter()
	b := prng.Generate(16, settings)

	assert.Equal(t, a, b)
}

func TestGenerateReusesSeedEveryPeriod(t *testing.T) {
	settings := prng.Settings{ReusePeriod: 4, Mask: 0xFF}

	prng.ResetCallCounter()
	first := prng.Generate(16, settings)

	for i := uint64(0); i < settings.ReusePeriod-1; i++ {
		prng.Generate(16, settings)
	}

	// The call at index ReusePeriod (the (ReusePeriod+1)-th call since
	// reset) lands back on a call_index that is a multiple of
	// ReusePeriod, so it reuses the same base seed as the first call.
	repeated := prng.Generate(16, settings)

	assert.Equal(t, first, repeated)
}

func TestGenerateDiffersBetweenNonReusedCalls(t *testing.T) {
	settings := prng.Settings{ReusePeriod: 100, Mask: 0xFF}

	prng.ResetCallCounter()
	a := prng.Generate(16, settings)
	b := prng.Generate(16, settings)

	assert.NotEqual(t, a, b)
}

func TestSimulateEntropyRespectsMask(t *testing.T) {
	settings := prng.Settings{ReusePeriod: 4, Mask: 0x7F}

	prng.ResetCallCounter()
	chunk := prng.SimulateEntropy(settings)

	require.Len(t, chunk, prng.EntropyChunkSize)
	for _, b := range chunk {
		assert.LessOrEqual(t, b, settings.Mask)
	}
}

func TestSimulateEntropyDuplicatesThirdByte(t *testing.T) {
	settings := prng.DefaultSettings()

	prng.ResetCallCounter()
	chunk := prng.SimulateEntropy(settings)

	for i := 2; i < len(chunk); i += 3 {
		assert.Equal(t, chunk[i-1], chunk[i])
	}
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := prng.DefaultSettings()
	assert.Equal(t, uint64(4), s.ReusePeriod)
	assert.Equal(t, byte(0x7F), s.Mask)
}
