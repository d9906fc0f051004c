package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/internal/logging"
	"github.com/iwvelando/loan-calculator/internal/server"
	"github.com/iwvelando/loan-calculator/pkg/calculators"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

// applyOverrides layers command-line flags over the loaded server config.
func applyOverrides(cfg *server.Config, address, maxBodySize string) error {
	if address != "" {
		cfg.Address = address
	}
	if maxBodySize == "" {
		return nil
	}
	size, err := server.ParseSize(maxBodySize)
	if err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("max body size must be positive, got %q", maxBodySize)
	}
	cfg.SetBodySizeBytes(size)
	return nil
}

func main() {
	configPath := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	appConfigPath := flag.String("app-config", "", "optional application configuration supplying the tax schedule")
	envFile := flag.String("env-file", constants.DefaultEnvFile, "optional dotenv file loaded before configuration")
	address := flag.String("address", "", "listen address override")
	maxBodySize := flag.String("max-body-size", "", "request body limit override (e.g., 64K, 1M)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configPath, err)
		os.Exit(1)
	}
	if err := applyOverrides(cfg, *address, *maxBodySize); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid command-line override\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	tax := calculators.DefaultTaxSchedule()
	if *appConfigPath != "" {
		appConf, err := config.LoadConfiguration(*appConfigPath)
		if err != nil {
			logger.Fatal("failed to load application configuration",
				zap.String("op", "main"),
				zap.String("path", *appConfigPath),
				zap.Error(err),
			)
		}
		tax = appConf.TaxSchedule()
		if err := tax.Validate(); err != nil {
			logger.Fatal("invalid tax schedule",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	var limiter *server.RateLimiter
	if cfg.RateLimit.Requests > 0 {
		limiter = server.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimitWindow())
		defer limiter.Stop()
	}

	handler := server.NewHandler(logger, server.Options{
		MaxBodySize:    cfg.BodySizeBytes(),
		Version:        version,
		TaxSchedule:    tax,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Limiter:        limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting loan-calculator server",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
			zap.Int64("maxBodySize", cfg.BodySizeBytes()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case sig := <-quit:
		logger.Info("shutting down server",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
