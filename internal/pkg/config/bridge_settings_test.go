//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *BridgeSettings
		expectedError bool
	}{
		{"defaults", &BridgeSettings{}, false},
		{"enforced", &BridgeSettings{EnforceMode: true, RequireMode: true, MaxHandles: 64}, false},
		{"negative max handles", &BridgeSettings{MaxHandles: -1}, true},
		{"valid fingerprint", &BridgeSettings{ReferenceFingerprint: "00112233445566778899aabbccddeeff00112233"}, false},
		{"short fingerprint", &BridgeSettings{ReferenceFingerprint: "0011"}, true},
		{"non hex fingerprint", &BridgeSettings{ReferenceFingerprint: "zz112233445566778899aabbccddeeff00112233"}, true},
		{"0x prefixed fingerprint", &BridgeSettings{ReferenceFingerprint: "0x112233445566778899aabbccddeeff00112233"}, true},
		{"0X prefixed fingerprint", &BridgeSettings{ReferenceFingerprint: "0X112233445566778899aabbccddeeff00112233"}, true},
		{"upper case fingerprint", &BridgeSettings{ReferenceFingerprint: "00112233445566778899AABBCCDDEEFF00112233"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadBridgeSettingsFromEnv(t *testing.T) {
	t.Setenv(EnvEnforceMode, "true")
	t.Setenv(EnvRequireMode, "false")
	t.Setenv(EnvMaxHandles, "32")
	t.Setenv(EnvReferenceFingerprint, "00112233445566778899aabbccddeeff00112233")

	settings, err := ReadBridgeSettingsFromEnv()
	require.NoError(t, err)
	assert.True(t, settings.EnforceMode)
	assert.False(t, settings.RequireMode)
	assert.Equal(t, 32, settings.MaxHandles)

	fp, err := settings.ReferenceFingerprintBytes()
	require.NoError(t, err)
	assert.Len(t, fp, 20)
}

func TestReadBridgeSettingsFromEnv_Invalid(t *testing.T) {
	t.Setenv(EnvEnforceMode, "maybe")

	_, err := ReadBridgeSettingsFromEnv()
	assert.Error(t, err)
}
