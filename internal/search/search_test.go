package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuddySheep/Shamirs-Leak/internal/prng"
	"github.com/MuddySheep/Shamirs-Leak/internal/search"
	"github.com/MuddySheep/Shamirs-Leak/internal/shamir"
	"github.com/MuddySheep/Shamirs-Leak/internal/stats"
)

// hexEncoder and prefixedDeriver are deterministic test doubles: the
// mnemonic "phrase" is just the entropy's hex form, and the "zpub" is a
// fixed prefix over that phrase, so expected matches can be computed
// directly from known entropy without touching the real BIP39/BIP32
// collaborators.
type hexEncoder struct{}

func (hexEncoder) Encode(entropy []byte) (string, error) {
	return fmt.Sprintf("%x", entropy), nil
}

type prefixedDeriver struct{}

func (prefixedDeriver) Zpub(phrase string) (string, error) {
	return "zpub-" + phrase, nil
}

func zpubFor(entropy []byte) string {
	return fmt.Sprintf("zpub-%x", entropy)
}

func TestRunZeroSecretRecovery(t *testing.T) {
	t.Parallel()

	shareA := shamir.Share{Index: 1, Payload: make([]byte, 16)}
	shareB := shamir.Share{Index: 2, Payload: make([]byte, 16)}
	target := zpubFor(make([]byte, 16))

	d := search.New(hexEncoder{}, prefixedDeriver{}, stats.New(), nil)
	result, err := d.Run(context.Background(), shareA, shareB, target, search.Config{
		MaxDepth:           1,
		Settings:           prng.DefaultSettings(),
		IndexCollisionProb: 0,
		Workers:            2,
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, byte(3), result.Share.Index)
	assert.Equal(t, make([]byte, 16), result.Share.Payload)
	assert.Equal(t, target, result.Zpub)
}

func TestRunExhaustionReturnsNotFoundAndCountsCandidates(t *testing.T) {
	t.Parallel()

	shareA := shamir.Share{Index: 10, Payload: make([]byte, 16)}
	shareB := shamir.Share{Index: 20, Payload: make([]byte, 16)}

	st := stats.New()
	d := search.New(hexEncoder{}, prefixedDeriver{}, st, nil)
	result, err := d.Run(context.Background(), shareA, shareB, "zpub-unreachable-target", search.Config{
		MaxDepth:           16,
		Settings:           prng.DefaultSettings(),
		IndexCollisionProb: 0,
		Workers:            4,
	})
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.GreaterOrEqual(t, st.TotalCandidates(), uint64(16*253))
}

func TestRunRejectsMismatchedShareLengths(t *testing.T) {
	t.Parallel()

	shareA := shamir.Share{Index: 1, Payload: make([]byte, 16)}
	shareB := shamir.Share{Index: 2, Payload: make([]byte, 8)}

	d := search.New(hexEncoder{}, prefixedDeriver{}, stats.New(), nil)
	_, err := d.Run(context.Background(), shareA, shareB, "", search.Config{MaxDepth: 1})
	assert.Error(t, err)
}

func TestRunRejectsDuplicateIndex(t *testing.T) {
	t.Parallel()

	shareA := shamir.Share{Index: 5, Payload: make([]byte, 16)}
	shareB := shamir.Share{Index: 5, Payload: make([]byte, 16)}

	d := search.New(hexEncoder{}, prefixedDeriver{}, stats.New(), nil)
	_, err := d.Run(context.Background(), shareA, shareB, "", search.Config{MaxDepth: 1})
	assert.Error(t, err)
}

func TestRunRejectsInvalidProbability(t *testing.T) {
	t.Parallel()

	shareA := shamir.Share{Index: 1, Payload: make([]byte, 16)}
	shareB := shamir.Share{Index: 2, Payload: make([]byte, 16)}

	d := search.New(hexEncoder{}, prefixedDeriver{}, stats.New(), nil)
	_, err := d.Run(context.Background(), shareA, shareB, "", search.Config{MaxDepth: 1, IndexCollisionProb: 1.5})
	assert.Error(t, err)
}

func TestRunEmptyTargetNeverMatches(t *testing.T) {
	t.Parallel()

	shareA := shamir.Share{Index: 1, Payload: make([]byte, 16)}
	shareB := shamir.Share{Index: 2, Payload: make([]byte, 16)}

	d := search.New(hexEncoder{}, prefixedDeriver{}, stats.New(), nil)
	result, err := d.Run(context.Background(), shareA, shareB, "", search.Config{MaxDepth: 1, IndexCollisionProb: 0})
	require.NoError(t, err)
	assert.False(t, result.Found)
}
