package cryptography

import (
	"bytes"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

// Generate returns n bytes from the module DRBG. n == 0 yields an empty slice.
// A DRBG failure is logged and returned as fips.ErrOperation.
func (b *Bridge) Generate(n int) ([]byte, error) {
	if n < 0 {
		return nil, fips.NewError(fips.KindConversion, "drbg.generate", "negative length", nil)
	}
	if n == 0 {
		return []byte{}, nil
	}

	scratch := make([]byte, n)
	defer clear(scratch)

	if err := b.module.RandBytes(scratch); err != nil {
		verr := fips.NewError(fips.KindOperation, "drbg.generate", "random generation failed", err)
		b.logger.Error(verr.Error())
		return nil, verr
	}
	b.metrics.RandomGenerated(n)

	return bytes.Clone(scratch), nil
}
