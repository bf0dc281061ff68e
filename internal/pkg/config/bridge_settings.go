package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Environment variables read by ReadBridgeSettingsFromEnv
const (
	EnvEnforceMode          = "FIPS_BRIDGE_ENFORCE_MODE"
	EnvRequireMode          = "FIPS_BRIDGE_REQUIRE_MODE"
	EnvMaxHandles           = "FIPS_BRIDGE_MAX_HANDLES"
	EnvReferenceFingerprint = "FIPS_BRIDGE_REFERENCE_FINGERPRINT"
)

// BridgeSettings controls how the bridge gates operations on the module's operating mode
type BridgeSettings struct {
	// EnforceMode rejects signature verification while the module is outside FIPS mode.
	// When false the mode is only logged on each verification.
	EnforceMode bool `mapstructure:"enforce_mode"`
	// RequireMode makes startup fail when FIPS mode cannot be enabled.
	RequireMode bool `mapstructure:"require_mode"`
	// MaxHandles caps the live contexts per family; zero selects the default.
	MaxHandles int `mapstructure:"max_handles" validate:"gte=0,lte=1048576"`
	// ReferenceFingerprint overrides the build-time reference fingerprint (40 hex characters).
	ReferenceFingerprint string `mapstructure:"reference_fingerprint" validate:"omitempty,len=40,hexadecimal,excludesall=xX"`
}

// Validate checks that all fields in BridgeSettings are valid
func (s *BridgeSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for BridgeSettings: %w", err)
	}

	return nil
}

// ReferenceFingerprintBytes decodes ReferenceFingerprint; it returns nil when unset.
func (s *BridgeSettings) ReferenceFingerprintBytes() ([]byte, error) {
	if s.ReferenceFingerprint == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s.ReferenceFingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reference fingerprint: %w", err)
	}
	return b, nil
}

// ReadBridgeSettingsFromEnv builds BridgeSettings from environment variables, falling back to defaults.
func ReadBridgeSettingsFromEnv() (*BridgeSettings, error) {
	settings := &BridgeSettings{}

	if v := os.Getenv(EnvEnforceMode); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s=%q: %w", EnvEnforceMode, v, err)
		}
		settings.EnforceMode = b
	}
	if v := os.Getenv(EnvRequireMode); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s=%q: %w", EnvRequireMode, v, err)
		}
		settings.RequireMode = b
	}
	if v := os.Getenv(EnvMaxHandles); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s=%q: %w", EnvMaxHandles, v, err)
		}
		settings.MaxHandles = n
	}
	settings.ReferenceFingerprint = os.Getenv(EnvReferenceFingerprint)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
