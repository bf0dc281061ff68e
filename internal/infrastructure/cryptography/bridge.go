package cryptography

import (
	"errors"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/handles"
	"github.com/MGTheTrain/fips-provider/internal/pkg/config"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"
	"github.com/MGTheTrain/fips-provider/internal/pkg/metrics"
)

// Bridge drives module contexts through opaque handles.
//
// Every Init returns a handle the caller owns and must pass to the matching Destroy exactly once.
// Calls on different handles may run concurrently; calls on one handle must not.
type Bridge struct {
	module   fips.Module
	mode     *ModeController
	settings config.BridgeSettings
	logger   logger.Logger
	metrics  *metrics.Metrics

	digests *handles.Table[*digestContext]
	rsaKeys *handles.Table[*rsaContext]
	ecKeys  *handles.Table[*ecContext]
}

// NewBridge creates a Bridge over module. module, mode and logger are required; settings and m may be nil.
func NewBridge(module fips.Module, mode *ModeController, settings *config.BridgeSettings, logger logger.Logger, m *metrics.Metrics) (*Bridge, error) {
	if module == nil || mode == nil {
		return nil, errors.New("module and mode controller are required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if settings == nil {
		settings = &config.BridgeSettings{}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &Bridge{
		module:   module,
		mode:     mode,
		settings: *settings,
		logger:   logger,
		metrics:  m,
		digests:  handles.NewTable[*digestContext](fips.FamilyDigest, settings.MaxHandles),
		rsaKeys:  handles.NewTable[*rsaContext](fips.FamilyRSA, settings.MaxHandles),
		ecKeys:   handles.NewTable[*ecContext](fips.FamilyEC, settings.MaxHandles),
	}, nil
}

// Mode returns the mode controller the bridge consults.
func (b *Bridge) Mode() *ModeController {
	return b.mode
}

// LiveHandles returns the number of live contexts per family.
func (b *Bridge) LiveHandles() map[string]int {
	return map[string]int{
		fips.FamilyDigest: b.digests.Len(),
		fips.FamilyRSA:    b.rsaKeys.Len(),
		fips.FamilyEC:     b.ecKeys.Len(),
	}
}

// rejectHandle logs and counts a failed handle resolution.
func (b *Bridge) rejectHandle(family string, err error) error {
	b.logger.Error(err.Error())
	b.metrics.StaleHandle(family)
	return err
}

// checkMode logs the operating mode and, when enforced, rejects the call outside FIPS mode.
func (b *Bridge) checkMode(op string) error {
	enabled := b.mode.Enabled()
	b.logger.Info(op, ": FIPS mode ", enabled)
	if b.settings.EnforceMode && !enabled {
		return fips.NewError(fips.KindOperation, op, "module is not in FIPS mode", nil)
	}
	return nil
}
