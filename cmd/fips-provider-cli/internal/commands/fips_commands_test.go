//go:build unit
// +build unit

package commands

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/fipsmodule"
	"github.com/MGTheTrain/fips-provider/internal/pkg/config"
	"github.com/MGTheTrain/fips-provider/internal/pkg/testutil"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRootCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	log := testutil.SetupTestLogger(t)
	provider, mode, err := setupProvider(&config.BridgeSettings{}, log)
	require.NoError(t, err)

	rootCmd := &cobra.Command{Use: "fips-provider-cli"}
	registerCommands(rootCmd, &FIPSCommandHandler{provider: provider, mode: mode, logger: log})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	return rootCmd, &out
}

func TestDigestCmd(t *testing.T) {
	rootCmd, out := setupRootCmd(t)

	inputFile := testutil.WriteTestFile(t, "input.txt", []byte("abc"))

	rootCmd.SetArgs([]string{"digest", "--algorithm", "SHA256", "--input-file", inputFile})
	require.NoError(t, rootCmd.Execute())

	assert.True(t, strings.HasPrefix(out.String(), "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"))
}

func TestRandomCmd(t *testing.T) {
	rootCmd, out := setupRootCmd(t)

	rootCmd.SetArgs([]string{"random", "--length", "16"})
	require.NoError(t, rootCmd.Execute())

	assert.Len(t, strings.TrimSpace(out.String()), 32)
}

func TestAlgorithmsCmd(t *testing.T) {
	rootCmd, out := setupRootCmd(t)

	rootCmd.SetArgs([]string{"algorithms"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "SHA256withECDSA")
	assert.Contains(t, out.String(), "NativePRNG")
}

func TestModuleInfoCmd(t *testing.T) {
	rootCmd, out := setupRootCmd(t)

	rootCmd.SetArgs([]string{"module-info"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "fips mode:")
	assert.Contains(t, out.String(), "reference:  0000000000000000000000000000000000000000")
}

func TestVerifyRSACmd(t *testing.T) {
	rootCmd, _ := setupRootCmd(t)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	data := []byte("This is a signed message")
	digest := sha256.Sum256(data)
	signature, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA256, digest[:])
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	inputFile := testutil.WriteTestFile(t, "input.txt", data)
	signatureFile := testutil.WriteTestFile(t, "input.sig", signature)
	publicKeyFile := testutil.WriteTestFile(t, "public-key.pem", pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	rootCmd.SetArgs([]string{"verify-rsa",
		"--input-file", inputFile,
		"--signature-file", signatureFile,
		"--public-key", publicKeyFile,
	})
	assert.NoError(t, rootCmd.Execute())
}

func selfCheckFromEnv(t *testing.T, fingerprint string) error {
	t.Helper()
	t.Setenv(config.EnvReferenceFingerprint, fingerprint)

	handler, err := NewFIPSCommandHandler()
	require.NoError(t, err)

	rootCmd := &cobra.Command{Use: "fips-provider-cli"}
	registerCommands(rootCmd, handler)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"self-check"})
	return rootCmd.Execute()
}

func TestSelfCheckCmd(t *testing.T) {
	t.Run("NoReferenceFingerprint", func(t *testing.T) {
		assert.NoError(t, selfCheckFromEnv(t, ""))
	})

	t.Run("MatchingFingerprint", func(t *testing.T) {
		computed, err := fipsmodule.New().IncoreFingerprint()
		require.NoError(t, err)

		assert.NoError(t, selfCheckFromEnv(t, hex.EncodeToString(computed[:])))
	})

	t.Run("TamperedImage", func(t *testing.T) {
		err := selfCheckFromEnv(t, "00112233445566778899aabbccddeeff00112233")
		assert.ErrorIs(t, err, fips.ErrFingerprintMismatch)
		assert.ErrorIs(t, err, fips.ErrOperation)
	})
}
