package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pawsprefs/paws/internal/session"
	"github.com/pawsprefs/paws/internal/tui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Swipe through a deck in the terminal",
		Run:   runPlay,
	}
	cmd.Flags().Bool("debug", false, "Open the debug panel on start")

	RootCmd.AddCommand(cmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	if cmd.Flags().Lookup("debug") != nil {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.Debug = true
		}
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := openLogFile(cfg.LogFile)
	if err != nil {
		exitErr("open log file", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.LogLevel)

	gen, err := newGenerator(cfg)
	if err != nil {
		exitErr("create generator", err)
	}
	ctrl := session.New(gen, cfg.CatCount, logger.With("component", "session"))

	p := tea.NewProgram(
		tui.NewRootModel(ctrl, tui.Options{
			DragThreshold: cfg.DragThreshold,
			ExitDelay:     cfg.ExitDelay,
			Debug:         cfg.Debug,
			Logger:        logger.With("component", "tui"),
		}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "error", err)
		exitErr("run program", err)
	}
}
