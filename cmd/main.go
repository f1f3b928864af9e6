/*
Package main is the entry point for the task board application.

It is responsible for loading configuration, initializing the global logging system,
connecting to the remote store and the durable local state, restoring and validating
the saved session, loading the initial snapshot, setting up the HTTP server, and
gracefully handling operating system interrupt signals (SIGINT, SIGTERM)
to ensure a smooth shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/app/board"
	"taskboard/internal/app/localstate"
	"taskboard/internal/app/remote"
	"taskboard/internal/configs"
	"taskboard/internal/handler"
	"taskboard/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the remote store and apply migrations
	pool, err := remote.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to the remote store")
	}
	defer pool.Close()

	// Open the durable local identity store
	local, err := localstate.Open(cfg.LocalStatePath)
	if err != nil {
		logx.Fatal(err, "Failed to open the local state store")
	}
	defer local.Close()

	// Build the board engine: restore the saved identity, load the initial
	// snapshot, and validate the identity against the loaded user set.
	engine := board.NewEngine(remote.NewPostgresStore(pool), local)
	engine.RestoreSession()

	if customErr := engine.LoadAll(ctx); customErr != nil {
		logx.Fatal(customErr, "Initial load from the remote store failed")
	}

	// Setup HTTP server and routes
	deps := &handler.AppDeps{
		Engine: engine,
		Config: cfg,
	}
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Task Board starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
