//go:build unit
// +build unit

package app

import (
	"testing"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Resolve(t *testing.T) {
	services := SetupTestServices(t, nil)
	p := services.Provider

	tests := []struct {
		typ, name, want string
	}{
		{TypeMessageDigest, "SHA", "SHA-1"},
		{TypeMessageDigest, "sha1", "SHA-1"},
		{TypeMessageDigest, "SHA-256", "SHA256"},
		{TypeMessageDigest, "SHA512", "SHA512"},
		{TypeSignature, "SHA256withRSA", "SHA256withRSA"},
		{TypeSignature, "1.2.840.113549.1.1.11", "SHA256withRSA"},
		{TypeSignature, "OID.1.2.840.113549.1.1.5", "SHA1withRSA"},
		{TypeSignature, "1.3.14.3.2.29", "SHA1withRSA"},
		{TypeSignature, "sha384withrsaandmgf1", "SHA384withRSAandMGF1"},
		{TypeSignature, "OID.1.2.840.10045.4.3.3", "SHA384withECDSA"},
		{TypeSecureRandom, "SHA1PRNG", "SHA1PRNG"},
		{TypeSecureRandom, "NativePRNG", "NativePRNG"},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"."+tt.name, func(t *testing.T) {
			got, err := p.Resolve(tt.typ, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := p.Resolve(TypeMessageDigest, "MD5")
		assert.ErrorIs(t, err, fips.ErrUnknownAlgorithm)

		_, err = p.Resolve("Cipher", "AES")
		assert.ErrorIs(t, err, fips.ErrUnknownAlgorithm)

		_, err = p.NewSignature("SHA512withECDSA")
		assert.ErrorIs(t, err, fips.ErrUnknownAlgorithm)
	})
}

func TestProvider_Algorithms(t *testing.T) {
	services := SetupTestServices(t, nil)
	algorithms := services.Provider.Algorithms()

	byName := make(map[string]fips.Algorithm)
	for _, alg := range algorithms {
		byName[alg.Type+"."+alg.Name] = alg
	}

	assert.Len(t, algorithms, 2+5+10+2)
	assert.ElementsMatch(t, []string{"SHA", "SHA1"}, byName["MessageDigest.SHA-1"].Aliases)
	assert.ElementsMatch(t, []string{"1.2.840.113549.1.1.11"}, byName["Signature.SHA256withRSA"].Aliases)
	assert.Empty(t, byName["Signature.SHA256withRSAandMGF1"].Aliases)
	assert.Equal(t, TypeMessageDigest, algorithms[0].Type)
}
