//go:build unit
// +build unit

package app

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDigestService_Digest(t *testing.T) {
	services := SetupTestServices(t, nil)
	ctx := context.Background()

	digest, err := services.DigestService.Digest(ctx, "SHA-256", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(digest))
	assert.Equal(t, 0, services.Bridge.LiveHandles()[fips.FamilyDigest])

	_, err = services.DigestService.Digest(ctx, "MD5", []byte("abc"))
	assert.ErrorIs(t, err, fips.ErrUnknownAlgorithm)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = services.DigestService.Digest(cancelled, "SHA-256", []byte("abc"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRandomService_Generate(t *testing.T) {
	services := SetupTestServices(t, nil)
	ctx := context.Background()

	out, err := services.RandomService.Generate(ctx, 48)
	require.NoError(t, err)
	assert.Len(t, out, 48)

	out, err = services.RandomService.Generate(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = services.RandomService.Generate(ctx, -1)
	assert.ErrorIs(t, err, fips.ErrConversion)
}

func TestVerificationService_Verify(t *testing.T) {
	ctx := context.Background()
	message := []byte("This is a signed message")
	digest := sha256.Sum256(message)

	rsaKey, err := rsa.GenerateKey(rand.Reader, TestKeySize2048)
	require.NoError(t, err)
	rsaSig, err := rsa.SignPKCS1v15(rand.Reader, rsaKey, crypto.SHA256, digest[:])
	require.NoError(t, err)

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	t.Run("Valid", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*fips.VerificationRecord")).Return(nil)
		services := SetupTestServices(t, repo)

		record, err := services.VerificationService.Verify(ctx, "SHA256withRSA", &rsaKey.PublicKey, message, rsaSig)
		require.NoError(t, err)
		assert.True(t, record.Valid())
		assert.Equal(t, "SHA256withRSA", record.Algorithm)
		assert.Equal(t, fips.FamilyRSA, record.Family)
		assert.Empty(t, record.ErrorKind)
		assert.Equal(t, services.Mode.Enabled(), record.FIPSMode)
		assert.Equal(t, 0, services.Bridge.LiveHandles()[fips.FamilyRSA])
		repo.AssertExpectations(t)
	})

	t.Run("Mismatch", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*fips.VerificationRecord")).Return(nil)
		services := SetupTestServices(t, repo)

		record, err := services.VerificationService.Verify(ctx, "SHA256withRSA", &rsaKey.PublicKey, []byte("another message"), rsaSig)
		require.NoError(t, err)
		assert.Equal(t, fips.OutcomeInvalid, record.Outcome)
		assert.Equal(t, fips.KindSignatureMismatch.String(), record.ErrorKind)
		assert.NotEmpty(t, record.Message)
		repo.AssertExpectations(t)
	})

	t.Run("MalformedSignature", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*fips.VerificationRecord")).Return(nil)
		services := SetupTestServices(t, repo)

		record, err := services.VerificationService.Verify(ctx, "SHA256withECDSA", &ecKey.PublicKey, message, []byte{0x01, 0x02, 0x03})
		require.NoError(t, err)
		assert.Equal(t, fips.OutcomeError, record.Outcome)
		assert.Equal(t, fips.FamilyEC, record.Family)
		assert.NotEqual(t, fips.KindSignatureMismatch.String(), record.ErrorKind)
		assert.Equal(t, 0, services.Bridge.LiveHandles()[fips.FamilyEC])
		repo.AssertExpectations(t)
	})

	t.Run("InvalidKeyIsNotRecorded", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		services := SetupTestServices(t, repo)

		_, err := services.VerificationService.Verify(ctx, "SHA256withRSA", &ecKey.PublicKey, message, rsaSig)
		assert.ErrorIs(t, err, ErrInvalidKey)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*fips.VerificationRecord")).Return(errors.New("database is locked"))
		services := SetupTestServices(t, repo)

		_, err := services.VerificationService.Verify(ctx, "SHA256withRSA", &rsaKey.PublicKey, message, rsaSig)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to store verification record")
		repo.AssertExpectations(t)
	})
}

func TestVerificationService_ListAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("ListDefaultsQuery", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		expected := []*fips.VerificationRecord{{ID: "a"}}
		repo.On("List", ctx, fips.NewVerificationQuery()).Return(expected, nil)
		services := SetupTestServices(t, repo)

		records, err := services.VerificationService.List(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, expected, records)
		repo.AssertExpectations(t)
	})

	t.Run("ListRejectsInvalidQuery", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		services := SetupTestServices(t, repo)

		query := fips.NewVerificationQuery()
		query.SortBy = "message"
		_, err := services.VerificationService.List(ctx, query)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		repo := new(MockVerificationRepository)
		repo.On("GetByID", ctx, "missing").Return(nil, fips.ErrRecordNotFound)
		services := SetupTestServices(t, repo)

		_, err := services.VerificationService.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, fips.ErrRecordNotFound)
		repo.AssertExpectations(t)
	})
}

func TestModuleService(t *testing.T) {
	services := SetupTestServices(t, nil)
	ctx := context.Background()

	status, err := services.ModuleService.Status(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, status.Info.Version)
	assert.NotEmpty(t, status.Info.Platform)
	assert.Equal(t, services.Mode.Enabled(), status.FIPSMode)
	assert.Len(t, status.ReferenceFingerprint, fips.FingerprintSize)
	// no reference fingerprint is linked into test binaries
	assert.False(t, status.IntegrityVerified)

	algorithms := services.ModuleService.Algorithms(ctx)
	assert.Equal(t, services.Provider.Algorithms(), algorithms)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		n        int
		expected string
	}{
		{"Short", "bad signature", 64, "bad signature"},
		{"ASCII", "bad signature", 3, "bad"},
		{"KeepsWholeRune", "key größe", 8, "key grö"},
		{"BacksOffSplitRune", "key größe", 7, "key gr"},
		{"SplitThreeByteRune", "ab€", 4, "ab"},
		{"Zero", "€", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, len(got), tt.n)
		})
	}
}
