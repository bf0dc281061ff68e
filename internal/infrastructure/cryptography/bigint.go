package cryptography

import (
	"math/big"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

// BytesToBigInt interprets buf as an unsigned big-endian magnitude.
// Empty input fails with fips.ErrConversion. buf is not retained.
func BytesToBigInt(buf []byte) (*big.Int, error) {
	if len(buf) == 0 {
		return nil, fips.NewError(fips.KindConversion, "bigint.convert", "empty input", nil)
	}
	return new(big.Int).SetBytes(buf), nil
}

// zeroBigInt scrubs the magnitude words of x before resetting it to zero.
func zeroBigInt(x *big.Int) {
	if x == nil {
		return
	}
	clear(x.Bits())
	x.SetInt64(0)
}
