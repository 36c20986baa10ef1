package ranker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuddySheep/Shamirs-Leak/internal/prng"
	"github.com/MuddySheep/Shamirs-Leak/internal/ranker"
	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

func TestRankPayloadsSortedDescending(t *testing.T) {
	prng.ResetCallCounter()

	knownA := make([]byte, 16)
	knownB := make([]byte, 16)
	for i := range knownA {
		knownA[i] = byte(i)
		knownB[i] = byte(255 - i)
	}

	candidates := ranker.RankPayloads(knownA, knownB, 64, prng.DefaultSettings(), 32)
	require.Len(t, candidates, 32)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}
}

func TestRankPayloadsRespectsQueueSize(t *testing.T) {
	prng.ResetCallCounter()

	candidates := ranker.RankPayloads(make([]byte, 16), make([]byte, 16), 300, prng.DefaultSettings(), 10)
	assert.Len(t, candidates, 10)
}

func TestRankPayloadsDefaultsQueueSize(t *testing.T) {
	prng.ResetCallCounter()

	candidates := ranker.RankPayloads(make([]byte, 16), make([]byte, 16), ranker.DefaultQueueSize+50, prng.DefaultSettings(), 0)
	assert.Len(t, candidates, ranker.DefaultQueueSize)
}

func TestRankIndicesWeightsKnownIndicesByProbability(t *testing.T) {
	t.Parallel()

	candidates, err := ranker.RankIndices(3, 200, 0.5)
	require.NoError(t, err)
	require.Len(t, candidates, 255)

	byIndex := make(map[byte]float64, len(candidates))
	for _, c := range candidates {
		byIndex[c.Index] = c.Weight
	}

	assert.InDelta(t, 0.25, byIndex[3], 1e-9)
	assert.InDelta(t, 0.25, byIndex[200], 1e-9)
	assert.InDelta(t, 0.5/253, byIndex[1], 1e-9)
}

func TestRankIndicesRejectsInvalidProbability(t *testing.T) {
	t.Parallel()

	_, err := ranker.RankIndices(1, 2, 1.5)
	require.Error(t, err)
	assert.True(t, recoveryerr.Is(err, recoveryerr.ErrInvalidProbability))

	_, err = ranker.RankIndices(1, 2, -0.1)
	require.Error(t, err)
}

func TestRankIndicesSortedDescending(t *testing.T) {
	t.Parallel()

	candidates, err := ranker.RankIndices(10, 20, 0.9)
	require.NoError(t, err)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Weight, candidates[i].Weight)
	}
}
