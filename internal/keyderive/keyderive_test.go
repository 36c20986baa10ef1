package keyderive_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuddySheep/Shamirs-Leak/internal/keyderive"
)

func TestDefaultZpubDeterministic(t *testing.T) {
	t.Parallel()

	phrase := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	d := keyderive.Default{}
	a, err := d.Zpub(phrase)
	require.NoError(t, err)

	b, err := d.Zpub(phrase)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "zpub"))
}

func TestDefaultZpubDiffersByMnemonic(t *testing.T) {
	t.Parallel()

	d := keyderive.Default{}

	a, err := d.Zpub("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
	require.NoError(t, err)

	b, err := d.Zpub("zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
