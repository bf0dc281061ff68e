package cryptography

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"
	"github.com/MGTheTrain/fips-provider/internal/pkg/metrics"
)

// ModeController owns the module's operating mode. Initialize runs at most once per controller.
type ModeController struct {
	module  fips.Module
	logger  logger.Logger
	metrics *metrics.Metrics

	once sync.Once
	err  error
}

// NewModeController creates a ModeController for module. m may be nil.
func NewModeController(module fips.Module, logger logger.Logger, m *metrics.Metrics) *ModeController {
	return &ModeController{
		module:  module,
		logger:  logger,
		metrics: m,
	}
}

// Initialize enables FIPS mode if the module is not already in it.
// Later calls return the result of the first call without touching the module.
func (c *ModeController) Initialize() error {
	c.once.Do(func() {
		if c.module.Mode() {
			c.logger.Info("FIPS mode already enabled")
			c.metrics.SetMode(true)
			return
		}

		if err := c.module.SetMode(true); err != nil {
			c.err = fips.NewError(fips.KindOperation, "mode.initialize", "failed to enable FIPS mode", err)
			c.logger.Error(c.err.Error())
			c.metrics.SetMode(false)
			return
		}

		enabled := c.module.Mode()
		c.metrics.SetMode(enabled)
		if !enabled {
			c.err = fips.NewError(fips.KindOperation, "mode.initialize", "module did not enter FIPS mode", nil)
			c.logger.Error(c.err.Error())
			return
		}
		c.logger.Info("FIPS mode enabled")
	})
	return c.err
}

// Enabled reports the module's current operating mode.
func (c *ModeController) Enabled() bool {
	return c.module.Mode()
}

// Version returns the module version string.
func (c *ModeController) Version() string {
	return c.module.Info().Version
}

// CFlags returns the flags the module was built with.
func (c *ModeController) CFlags() string {
	return c.module.Info().CFlags
}

// BuiltOn returns the module build timestamp.
func (c *ModeController) BuiltOn() string {
	return c.module.Info().BuiltOn
}

// Platform returns the module build platform.
func (c *ModeController) Platform() string {
	return c.module.Info().Platform
}

// Dir returns the module installation directory.
func (c *ModeController) Dir() string {
	return c.module.Info().Dir
}

// ReferenceSignature returns a copy of the fingerprint embedded in the module at build time.
func (c *ModeController) ReferenceSignature() []byte {
	fp := c.module.ReferenceFingerprint()
	return bytes.Clone(fp[:])
}

// ComputedSignature recomputes the in-core fingerprint of the module image.
func (c *ModeController) ComputedSignature() ([]byte, error) {
	fp, err := c.module.IncoreFingerprint()
	if err != nil {
		c.logger.Error("Failed to calculate in-core fingerprint: ", err)
		return nil, fips.NewError(fips.KindOperation, "mode.fingerprint", "failed to calculate in-core fingerprint", err)
	}
	return bytes.Clone(fp[:]), nil
}

// VerifyIntegrity compares the reference and computed fingerprints.
// It fails with fips.ErrNoReferenceFingerprint when there is nothing to compare against, and with
// fips.ErrFingerprintMismatch when the module image was tampered with or corrupted; the latter is fatal.
func (c *ModeController) VerifyIntegrity() error {
	computed, err := c.ComputedSignature()
	if err != nil {
		return err
	}
	reference := c.ReferenceSignature()
	if bytes.Equal(reference, make([]byte, fips.FingerprintSize)) {
		return fips.NewError(fips.KindOperation, "mode.integrity", "integrity not verifiable", fips.ErrNoReferenceFingerprint)
	}
	if !bytes.Equal(reference, computed) {
		err := fips.NewError(fips.KindOperation, "mode.integrity", "module image tampered or corrupted",
			fmt.Errorf("%w: reference %x, computed %x", fips.ErrFingerprintMismatch, reference, computed))
		c.logger.Error(err.Error())
		return err
	}
	return nil
}

var (
	modeControllerInstance *ModeController
	modeControllerOnce     sync.Once
)

// InitModeController creates the process-wide ModeController and initializes it.
// Only the first call has any effect; later calls return the first call's result.
func InitModeController(module fips.Module, logger logger.Logger, m *metrics.Metrics) error {
	modeControllerOnce.Do(func() {
		modeControllerInstance = NewModeController(module, logger, m)
	})
	return modeControllerInstance.Initialize()
}

// GetModeController returns the process-wide ModeController.
func GetModeController() (*ModeController, error) {
	if modeControllerInstance == nil {
		return nil, fmt.Errorf("mode controller not initialized: call InitModeController first")
	}
	return modeControllerInstance, nil
}
