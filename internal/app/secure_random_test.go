//go:build unit
// +build unit

package app

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureRandom(t *testing.T) {
	services := SetupTestServices(t, nil)

	rng, err := services.Provider.NewSecureRandom("SHA1PRNG")
	require.NoError(t, err)
	assert.Equal(t, "SHA1PRNG", rng.Name())

	t.Run("Reader", func(t *testing.T) {
		buf := make([]byte, 48)
		n, err := io.ReadFull(rng, buf)
		require.NoError(t, err)
		assert.Equal(t, 48, n)
		assert.NotEqual(t, make([]byte, 48), buf)
	})

	t.Run("GenerateSeed", func(t *testing.T) {
		a, err := rng.GenerateSeed(16)
		require.NoError(t, err)
		b, err := rng.GenerateSeed(16)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)

		empty, err := rng.GenerateSeed(0)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("SetSeedIsIgnored", func(t *testing.T) {
		rng.SetSeed([]byte("fixed"))
		a, err := rng.GenerateSeed(16)
		require.NoError(t, err)

		rng.SetSeed([]byte("fixed"))
		b, err := rng.GenerateSeed(16)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
