package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickstart/internal/housekeeping"
	"quickstart/internal/httpserver"
	"quickstart/internal/httpserver/handlers"
	"quickstart/internal/iso"
	"quickstart/internal/logging"
	"quickstart/internal/repository"
	"quickstart/internal/schema"
	"quickstart/internal/services"
	"quickstart/internal/validate"
	"quickstart/internal/version"
)

// versionFile carries the build version next to the binary.
const versionFile = "VERSION"

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	build := version.Load(versionFile)
	logging.Log.Infof("Kometa Quickstart %s (%s branch)", build.Version, build.Branch)

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	// --- Auto-migrate on startup ---
	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		return err
	}

	if err := repo.ValidateSchema(); err != nil {
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		return err
	}

	// Schema mirror. A fetch failure is tolerable as long as a previously
	// mirrored copy exists; composition degrades to unvalidated output
	// otherwise.
	schemas := schema.NewLoader(cfg, logging.Log)
	if err := schemas.EnsureCurrent(build.Branch); err != nil {
		logging.Log.Warnf("Schema mirror unavailable: %v", err)
	}

	housekeepingService := housekeeping.NewService(housekeeping.Dependencies{
		Schemas:  schemas,
		Branches: []string{build.Branch},
	})
	housekeepingService.Start()

	checker := version.NewChecker(build, logging.Log)
	checker.Start()
	// No defer stops here, we stop explicitly during graceful shutdown

	// Service Initialization
	providerClient := validate.NewClient(logging.Log)
	wizardService := services.NewWizardService(repo, schemas, providerClient, build.Branch, logging.Log)
	builderService := services.NewBuilderService(repo, schemas, build.Branch, logging.Log)
	infoService := services.NewInfoService(build, StartTime, checker)
	lists := iso.NewLists(logging.Log)

	h := handlers.NewHandlers(wizardService, builderService, infoService, lists, schemas, build.Branch, cfg)
	r := httpserver.SetupRouter(h)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logging.Log.Infof("Server starting on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-stop
	logging.Log.Info("Shutting down server...")

	checker.Stop()
	housekeepingService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logging.Log.Info("Server exited gracefully")
	return nil
}
