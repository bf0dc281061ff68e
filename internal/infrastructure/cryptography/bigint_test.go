//go:build unit
// +build unit

package cryptography

import (
	"math/big"
	"testing"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesToBigInt(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		for _, buf := range [][]byte{nil, {}} {
			n, err := BytesToBigInt(buf)
			assert.Nil(t, n)
			assert.ErrorIs(t, err, fips.ErrConversion)
		}
	})

	t.Run("UnsignedMagnitude", func(t *testing.T) {
		n, err := BytesToBigInt([]byte{0xff, 0xff})
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(0xffff), n)
		assert.Equal(t, 1, n.Sign())
	})

	t.Run("Injective", func(t *testing.T) {
		inputs := [][]byte{{0x01}, {0x02}, {0x01, 0x00}, {0x01, 0x01}, {0x80, 0x00, 0x00}}
		seen := make(map[string]bool)
		for _, in := range inputs {
			n, err := BytesToBigInt(in)
			require.NoError(t, err)
			assert.False(t, seen[n.String()], "duplicate value for %x", in)
			seen[n.String()] = true
		}
	})

	t.Run("InputNotRetained", func(t *testing.T) {
		buf := []byte{0x12, 0x34}
		n, err := BytesToBigInt(buf)
		require.NoError(t, err)

		buf[0] = 0
		assert.Equal(t, int64(0x1234), n.Int64())
	})
}

func TestZeroBigInt(t *testing.T) {
	n := new(big.Int).SetBytes([]byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef, 0x01})
	words := n.Bits()

	zeroBigInt(n)

	assert.Equal(t, 0, n.Sign())
	for _, w := range words {
		assert.Zero(t, w)
	}
	assert.NotPanics(t, func() { zeroBigInt(nil) })
}
