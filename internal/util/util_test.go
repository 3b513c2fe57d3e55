package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEquivalentForms(t *testing.T) {
	// U+00E9 (é) and U+0065 U+0301 (e + combining acute) must normalize
	// to the same string.
	composed := "café"
	decomposed := "café"
	assert.Equal(t, Normalize(composed), Normalize(decomposed))
}

func TestHKDFDeterministic(t *testing.T) {
	k1, err := HKDF([]byte("seed"), nil, []byte("folio/test"))
	require.NoError(t, err)
	k2, err := HKDF([]byte("seed"), nil, []byte("folio/test"))
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, HKDFKeyLength)
}

func TestHKDFInfoSeparation(t *testing.T) {
	k1, err := HKDF([]byte("seed"), nil, []byte("folio/a"))
	require.NoError(t, err)
	k2, err := HKDF([]byte("seed"), nil, []byte("folio/b"))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestRandomTokenLengthAndUniqueness(t *testing.T) {
	a, err := RandomToken(16)
	require.NoError(t, err)
	b, err := RandomToken(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
