// Package main is the entry point for the fips-provider-cli application.
// It registers the module, digest, random and verification sub-commands and executes the CLI.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/MGTheTrain/fips-provider/cmd/fips-provider-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "fips-provider-cli",
		Short: "FIPS validated cryptography CLI tool",
		Long: `fips-provider-cli computes digests, draws random bytes and verifies RSA and ECDSA
signatures through the FIPS 140-3 validated Go cryptographic module.

Run the binary with GODEBUG=fips140=on to operate in FIPS mode. The bridge honours:
- FIPS_BRIDGE_ENFORCE_MODE
- FIPS_BRIDGE_REQUIRE_MODE
- FIPS_BRIDGE_MAX_HANDLES
- FIPS_BRIDGE_REFERENCE_FINGERPRINT`,
	}

	if err := commands.InitFIPSCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
