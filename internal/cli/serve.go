package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawsprefs/paws/internal/api"
	"github.com/pawsprefs/paws/internal/metrics"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve swipe sessions over HTTP",
		Run:   runServe,
	}
	cmd.Flags().IntP("port", "p", 0, "Listen port (overrides config)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}

	logger := newLogger(os.Stdout, cfg.LogLevel)

	gen, err := newGenerator(cfg)
	if err != nil {
		logger.Error("failed to create generator", "error", err)
		os.Exit(1)
	}

	metrics.MustRegister()
	reg := api.NewRegistry(metrics.InstrumentGenerator(gen), cfg.CatCount, cfg.MaxSessions, logger)
	router := api.NewRouter(reg, cfg.APIKey, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("paws server starting", "addr", addr, "cat_count", cfg.CatCount, "image_source", cfg.ImageSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
