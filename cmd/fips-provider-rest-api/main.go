// cmd/fips-provider-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/fips-provider/internal/api/rest/v1"
	"github.com/MGTheTrain/fips-provider/internal/app"
	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/fipsmodule"
	"github.com/MGTheTrain/fips-provider/internal/infrastructure/persistence"
	"github.com/MGTheTrain/fips-provider/internal/pkg/config"
	"github.com/MGTheTrain/fips-provider/internal/pkg/logger"
	"github.com/MGTheTrain/fips-provider/internal/pkg/metrics"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services *appServices
	metrics  *metrics.Metrics
}

type appServices struct {
	module       fips.ModuleService
	digest       fips.DigestService
	random       fips.RandomService
	verification fips.VerificationService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	m, err := metrics.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	verificationRepo, err := persistence.NewGormVerificationRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification repository: %w", err)
	}

	// Initialize the module bridge
	bridge, mode, err := initializeBridge(&cfg.Bridge, log, m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bridge: %w", err)
	}

	// Initialize services
	services, err := initializeApplicationServices(app.NewProvider(bridge, log), mode, verificationRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		services: services,
		metrics:  m,
	}, nil
}

// initializeBridge enables FIPS mode and creates the context bridge
func initializeBridge(settings *config.BridgeSettings, log logger.Logger, m *metrics.Metrics) (*cryptography.Bridge, *cryptography.ModeController, error) {
	fingerprint, err := settings.ReferenceFingerprintBytes()
	if err != nil {
		return nil, nil, err
	}

	var opts []fipsmodule.Option
	if fingerprint != nil {
		opts = append(opts, fipsmodule.WithReferenceFingerprint(fingerprint))
	}
	module := fipsmodule.New(opts...)

	if err := cryptography.InitModeController(module, log, m); err != nil {
		if settings.RequireMode {
			return nil, nil, fmt.Errorf("FIPS mode is required: %w", err)
		}
		log.Warn("Continuing outside FIPS mode: ", err)
	}

	mode, err := cryptography.GetModeController()
	if err != nil {
		return nil, nil, err
	}

	if err := mode.VerifyIntegrity(); err != nil {
		if !errors.Is(err, fips.ErrNoReferenceFingerprint) {
			return nil, nil, fmt.Errorf("module integrity check failed: %w", err)
		}
		log.Warn("Module integrity not verified: ", err)
	}

	bridge, err := cryptography.NewBridge(module, mode, settings, log, m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create bridge: %w", err)
	}

	log.Info("FIPS bridge initialized, FIPS mode ", mode.Enabled())
	return bridge, mode, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	provider *app.Provider,
	mode fips.ModeReporter,
	verificationRepo fips.VerificationRepository,
	log logger.Logger,
) (*appServices, error) {
	moduleService, err := app.NewModuleService(provider, mode, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create module service: %w", err)
	}

	digestService, err := app.NewDigestService(provider, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create digest service: %w", err)
	}

	randomService, err := app.NewRandomService(provider, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create random service: %w", err)
	}

	verificationService, err := app.NewVerificationService(provider, mode, verificationRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		module:       moduleService,
		digest:       digestService,
		random:       randomService,
		verification: verificationService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.module,
		deps.services.digest,
		deps.services.random,
		deps.services.verification,
		deps.metrics.GetGatherer(),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
