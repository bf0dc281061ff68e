package app

import (
	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

// SecureRandom draws from the module DRBG. It implements io.Reader.
type SecureRandom struct {
	bridge fips.ContextBridge
	name   string
}

// Name returns the canonical algorithm name.
func (r *SecureRandom) Name() string {
	return r.name
}

// Read fills p with DRBG output.
func (r *SecureRandom) Read(p []byte) (int, error) {
	if err := r.NextBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// NextBytes fills p with DRBG output. p is left unmodified on failure.
func (r *SecureRandom) NextBytes(p []byte) error {
	out, err := r.bridge.Generate(len(p))
	if err != nil {
		return err
	}
	copy(p, out)
	clear(out)
	return nil
}

// GenerateSeed returns n bytes of DRBG output.
func (r *SecureRandom) GenerateSeed(n int) ([]byte, error) {
	return r.bridge.Generate(n)
}

// SetSeed is a no-op: the module DRBG seeds itself and does not accept caller entropy.
func (r *SecureRandom) SetSeed([]byte) {}
