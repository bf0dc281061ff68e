//go:build unit
// +build unit

package cryptography

import (
	"testing"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/fipsmodule"
	"github.com/MGTheTrain/fips-provider/internal/pkg/config"
	"github.com/MGTheTrain/fips-provider/internal/pkg/metrics"
	"github.com/MGTheTrain/fips-provider/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// setupBridge creates a Bridge over the native module with its own metrics.
func setupBridge(t *testing.T, settings *config.BridgeSettings) *Bridge {
	t.Helper()
	return setupBridgeWithModule(t, fipsmodule.New(), settings)
}

func setupBridgeWithModule(t *testing.T, module fips.Module, settings *config.BridgeSettings) *Bridge {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	m, err := metrics.NewMetrics()
	require.NoError(t, err)

	mode := NewModeController(module, logger, m)
	bridge, err := NewBridge(module, mode, settings, logger, m)
	require.NoError(t, err)

	return bridge
}
