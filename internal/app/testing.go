//go:build unit || integration
// +build unit integration

package app

import (
	"testing"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/fipsmodule"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"
	"github.com/MGTheTrain/fips-provider/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	Bridge   *cryptography.Bridge
	Mode     *cryptography.ModeController
	Provider *Provider
	Logger   logger.Logger

	DigestService       fips.DigestService
	RandomService       fips.RandomService
	VerificationService fips.VerificationService
	ModuleService       fips.ModuleService
}

// SetupTestServices wires the application services over the native module and repo
func SetupTestServices(t *testing.T, repo fips.VerificationRepository) *TestServices {
	t.Helper()

	log := testutil.SetupTestLogger(t)
	module := fipsmodule.New()
	mode := cryptography.NewModeController(module, log, nil)

	bridge, err := cryptography.NewBridge(module, mode, nil, log, nil)
	require.NoError(t, err)

	provider := NewProvider(bridge, log)

	digestService, err := NewDigestService(provider, log)
	require.NoError(t, err)
	randomService, err := NewRandomService(provider, log)
	require.NoError(t, err)
	verificationService, err := NewVerificationService(provider, mode, repo, log)
	require.NoError(t, err)
	moduleService, err := NewModuleService(provider, mode, log)
	require.NoError(t, err)

	return &TestServices{
		Bridge:              bridge,
		Mode:                mode,
		Provider:            provider,
		Logger:              log,
		DigestService:       digestService,
		RandomService:       randomService,
		VerificationService: verificationService,
		ModuleService:       moduleService,
	}
}
