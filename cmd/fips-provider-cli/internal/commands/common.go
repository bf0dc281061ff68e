package commands

import (
	"fmt"

	"github.com/MGTheTrain/fips-provider/internal/app"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/fipsmodule"
	"github.com/MGTheTrain/fips-provider/internal/pkg/config"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// setupProvider wires the module, mode controller, bridge and provider from bridge settings
func setupProvider(settings *config.BridgeSettings, log logger.Logger) (*app.Provider, *cryptography.ModeController, error) {
	fingerprint, err := settings.ReferenceFingerprintBytes()
	if err != nil {
		return nil, nil, err
	}

	var opts []fipsmodule.Option
	if fingerprint != nil {
		opts = append(opts, fipsmodule.WithReferenceFingerprint(fingerprint))
	}
	module := fipsmodule.New(opts...)

	mode := cryptography.NewModeController(module, log, nil)
	if err := mode.Initialize(); err != nil && settings.RequireMode {
		return nil, nil, fmt.Errorf("FIPS mode is required: %w", err)
	}

	bridge, err := cryptography.NewBridge(module, mode, settings, log, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create bridge: %w", err)
	}

	return app.NewProvider(bridge, log), mode, nil
}
