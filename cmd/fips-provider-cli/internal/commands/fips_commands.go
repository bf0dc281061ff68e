package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/fips-provider/internal/app"
	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/pkg/config"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// FIPSCommandHandler encapsulates the module, digest, random and verification commands
type FIPSCommandHandler struct {
	provider *app.Provider
	mode     fips.ModeReporter
	logger   logger.Logger
}

// NewFIPSCommandHandler initializes a FIPSCommandHandler from the bridge environment variables
func NewFIPSCommandHandler() (*FIPSCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	settings, err := config.ReadBridgeSettingsFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to read bridge settings: %w", err)
	}

	provider, mode, err := setupProvider(settings, loggerInstance)
	if err != nil {
		return nil, err
	}

	return &FIPSCommandHandler{
		provider: provider,
		mode:     mode,
		logger:   loggerInstance,
	}, nil
}

// ModuleInfoCmd prints the module build metadata, operating mode and fingerprints
func (commandHandler *FIPSCommandHandler) ModuleInfoCmd(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "version:    %s\n", commandHandler.mode.Version())
	fmt.Fprintf(out, "cflags:     %s\n", commandHandler.mode.CFlags())
	fmt.Fprintf(out, "built on:   %s\n", commandHandler.mode.BuiltOn())
	fmt.Fprintf(out, "platform:   %s\n", commandHandler.mode.Platform())
	fmt.Fprintf(out, "dir:        %s\n", commandHandler.mode.Dir())
	fmt.Fprintf(out, "fips mode:  %t\n", commandHandler.mode.Enabled())
	fmt.Fprintf(out, "reference:  %x\n", commandHandler.mode.ReferenceSignature())

	computed, err := commandHandler.mode.ComputedSignature()
	if err != nil {
		commandHandler.logger.Warn("in-core fingerprint unavailable: ", err)
		return
	}
	fmt.Fprintf(out, "computed:   %x\n", computed)
}

// SelfCheckCmd compares the reference and in-core fingerprints. Any failure other than a missing
// reference fingerprint is returned, so the process exits non-zero.
func (commandHandler *FIPSCommandHandler) SelfCheckCmd(_ *cobra.Command, _ []string) error {
	err := commandHandler.mode.VerifyIntegrity()
	switch {
	case err == nil:
		commandHandler.logger.Info("Integrity check passed")
		return nil
	case errors.Is(err, fips.ErrNoReferenceFingerprint):
		commandHandler.logger.Warn("Integrity check skipped: ", err)
		return nil
	default:
		commandHandler.logger.Error("Integrity check failed: ", err)
		return err
	}
}

// AlgorithmsCmd lists the registered algorithms
func (commandHandler *FIPSCommandHandler) AlgorithmsCmd(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	for _, algorithm := range commandHandler.provider.Algorithms() {
		fmt.Fprintf(out, "%-14s %-24s %v\n", algorithm.Type, algorithm.Name, algorithm.Aliases)
	}
}

// DigestCmd hashes a file and prints the hex digest
func (commandHandler *FIPSCommandHandler) DigestCmd(cmd *cobra.Command, _ []string) {
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag: ", err)
		return
	}
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: ", err)
		return
	}

	md, err := commandHandler.provider.NewMessageDigest(algorithm)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := md.Close(); err != nil {
			commandHandler.logger.Warn("failed to release digest context: ", err)
		}
	}()

	file, err := os.Open(filepath.Clean(inputFile))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer file.Close()

	if _, err := io.Copy(md, file); err != nil {
		commandHandler.logger.Error("failed to hash ", inputFile, ": ", err)
		return
	}

	digest, err := md.Digest()
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hex.EncodeToString(digest), inputFile)
}

// RandomCmd draws bytes from the module DRBG into a file, or prints them as hex
func (commandHandler *FIPSCommandHandler) RandomCmd(cmd *cobra.Command, _ []string) {
	length, err := cmd.Flags().GetInt("length")
	if err != nil {
		commandHandler.logger.Error("invalid length flag: ", err)
		return
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: ", err)
		return
	}

	rng, err := commandHandler.provider.NewSecureRandom(app.DefaultSecureRandom)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	out, err := rng.GenerateSeed(length)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer clear(out)

	if outputFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
		return
	}
	if err := os.WriteFile(outputFile, out, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Random bytes path ", outputFile)
}

// VerifyRSACmd verifies an RSA signature over a file
func (commandHandler *FIPSCommandHandler) VerifyRSACmd(cmd *cobra.Command, _ []string) {
	commandHandler.verify(cmd, fips.FamilyRSA)
}

// VerifyECDSACmd verifies a DER encoded ECDSA signature over a file
func (commandHandler *FIPSCommandHandler) VerifyECDSACmd(cmd *cobra.Command, _ []string) {
	commandHandler.verify(cmd, fips.FamilyEC)
}

func (commandHandler *FIPSCommandHandler) verify(cmd *cobra.Command, family string) {
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		commandHandler.logger.Error("invalid algorithm flag: ", err)
		return
	}
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: ", err)
		return
	}
	signatureFile, err := cmd.Flags().GetString("signature-file")
	if err != nil {
		commandHandler.logger.Error("invalid signature-file flag: ", err)
		return
	}
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		commandHandler.logger.Error("invalid public-key flag: ", err)
		return
	}

	engine, err := commandHandler.provider.NewSignature(algorithm)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := engine.Close(); err != nil {
			commandHandler.logger.Warn("failed to release verify context: ", err)
		}
	}()
	if engine.Family() != family {
		commandHandler.logger.Error(algorithm, " is not a ", family, " signature algorithm")
		return
	}

	keyPEM, err := os.ReadFile(filepath.Clean(publicKeyPath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	publicKey, err := app.ParsePublicKeyPEM(keyPEM)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	data, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	signature, err := os.ReadFile(filepath.Clean(signatureFile))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := engine.InitVerify(publicKey); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	if _, err := engine.Write(data); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	valid, err := engine.Verify(signature)
	switch {
	case errors.Is(err, fips.ErrSignatureMismatch), err == nil && !valid:
		commandHandler.logger.Error("Signature is invalid")
	case err != nil:
		commandHandler.logger.Error(err)
	default:
		commandHandler.logger.Info("Signature is valid")
	}
}

// InitFIPSCommands registers the module, digest, random and verification commands
func InitFIPSCommands(rootCmd *cobra.Command) error {
	handler, err := NewFIPSCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create FIPS command handler %w", err)
	}
	registerCommands(rootCmd, handler)
	return nil
}

func registerCommands(rootCmd *cobra.Command, handler *FIPSCommandHandler) {
	var moduleInfoCmd = &cobra.Command{
		Use:   "module-info",
		Short: "Print module metadata, operating mode and fingerprints",
		Run:   handler.ModuleInfoCmd,
	}
	rootCmd.AddCommand(moduleInfoCmd)

	var selfCheckCmd = &cobra.Command{
		Use:   "self-check",
		Short:        "Compare the reference and in-core module fingerprints",
		RunE:         handler.SelfCheckCmd,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(selfCheckCmd)

	var algorithmsCmd = &cobra.Command{
		Use:   "algorithms",
		Short: "List the registered algorithms",
		Run:   handler.AlgorithmsCmd,
	}
	rootCmd.AddCommand(algorithmsCmd)

	var digestCmd = &cobra.Command{
		Use:   "digest",
		Short: "Hash a file",
		Run:   handler.DigestCmd,
	}
	digestCmd.Flags().StringP("algorithm", "", "SHA-256", "Digest algorithm or alias")
	digestCmd.Flags().StringP("input-file", "", "", "Path to file which needs to be hashed")
	rootCmd.AddCommand(digestCmd)

	var randomCmd = &cobra.Command{
		Use:   "random",
		Short: "Draw bytes from the module DRBG",
		Run:   handler.RandomCmd,
	}
	randomCmd.Flags().IntP("length", "", 32, "Number of random bytes")
	randomCmd.Flags().StringP("output-file", "", "", "Path to output file; hex is printed when empty")
	rootCmd.AddCommand(randomCmd)

	var verifyRSACmd = &cobra.Command{
		Use:   "verify-rsa",
		Short: "Verify a file is valid using RSA",
		Run:   handler.VerifyRSACmd,
	}
	verifyRSACmd.Flags().StringP("algorithm", "", "SHA256withRSA", "RSA signature algorithm")
	verifyRSACmd.Flags().StringP("input-file", "", "", "Path to file which needs to be validated")
	verifyRSACmd.Flags().StringP("signature-file", "", "", "Path to signature input file")
	verifyRSACmd.Flags().StringP("public-key", "", "", "Path to PEM encoded RSA public key")
	rootCmd.AddCommand(verifyRSACmd)

	var verifyECDSACmd = &cobra.Command{
		Use:   "verify-ecdsa",
		Short: "Verify a file is valid using ECDSA",
		Run:   handler.VerifyECDSACmd,
	}
	verifyECDSACmd.Flags().StringP("algorithm", "", "SHA256withECDSA", "ECDSA signature algorithm")
	verifyECDSACmd.Flags().StringP("input-file", "", "", "Path to file which needs to be validated")
	verifyECDSACmd.Flags().StringP("signature-file", "", "", "Path to DER signature input file")
	verifyECDSACmd.Flags().StringP("public-key", "", "", "Path to PEM encoded EC public key")
	rootCmd.AddCommand(verifyECDSACmd)
}
