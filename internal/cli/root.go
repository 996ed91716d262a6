// Package cli implements the paws commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pawsprefs/paws/internal/config"
	"github.com/pawsprefs/paws/internal/profile"
	"github.com/pawsprefs/paws/internal/session"
)

var configPath string

// RootCmd is the top-level command. Without a subcommand it plays.
var RootCmd = &cobra.Command{
	Use:   "paws",
	Short: "Swipe through cats and find your favorites",
	Long:  "Paws & Preferences deals a deck of random cat profiles. Swipe right to like, left to skip, and see who you liked at the end.",
	Run:   runPlay,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .paws/config.yaml, then ~/.paws/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// newLogger builds the JSON logger used by every command.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// openLogFile opens the log file for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		path = config.DefaultLogFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// newImageSource picks the image source named by the config.
func newImageSource(cfg *config.Config) profile.ImageSource {
	if cfg.ImageSource == config.SourceAPI {
		return profile.NewAPISource(cfg.ImageBaseURL, cfg.RequestTimeout)
	}
	return profile.URLSource{BaseURL: cfg.ImageBaseURL}
}

func newGenerator(cfg *config.Config) (session.Generator, error) {
	gen, err := profile.NewGenerator(newImageSource(cfg))
	if err != nil {
		return nil, err
	}
	return gen, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
