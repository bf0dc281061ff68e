//go:build unit
// +build unit

package cryptography

import (
	"testing"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/fipsmodule"
	"github.com/MGTheTrain/fips-provider/internal/pkg/config"
	"github.com/MGTheTrain/fips-provider/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBridge(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	module := fipsmodule.New()
	mode := NewModeController(module, logger, nil)

	t.Run("OptionalSettingsAndMetrics", func(t *testing.T) {
		bridge, err := NewBridge(module, mode, nil, logger, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, bridge.LiveHandles()[fips.FamilyDigest])
	})

	t.Run("MissingDependencies", func(t *testing.T) {
		_, err := NewBridge(nil, mode, nil, logger, nil)
		assert.ErrorContains(t, err, "module and mode controller are required")

		_, err = NewBridge(module, nil, nil, logger, nil)
		assert.ErrorContains(t, err, "module and mode controller are required")

		_, err = NewBridge(module, mode, nil, nil, nil)
		assert.ErrorContains(t, err, "logger is required")
	})

	t.Run("InvalidSettings", func(t *testing.T) {
		_, err := NewBridge(module, mode, &config.BridgeSettings{MaxHandles: -1}, logger, nil)
		assert.Error(t, err)
	})
}
