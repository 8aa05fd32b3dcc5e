package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
	"gitlab.com/tinyland/lab/feedtui/pkg/host"
	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
	"gitlab.com/tinyland/lab/feedtui/pkg/terminal"
)

type rootFlags struct {
	configPath  string
	verbose     bool
	metricsAddr string
}

// newRootCmd creates the feedtui command with its subcommands attached.
func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:           "feedtui",
		Short:         "Terminal dashboard with a companion",
		Long:          "feedtui polls news, stocks, sports, RSS, GitHub, Spotify and YouTube into a grid of widgets.\nA companion creature earns XP while the dashboard is open.",
		Version:       fmt.Sprintf("%s (%s) built %s", host.Version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, f)
		},
	}
	cmd.SetVersionTemplate("feedtui {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "path to configuration file")
	cmd.PersistentFlags().BoolVar(&f.verbose, "verbose", false, "enable debug logging")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. 127.0.0.1:9464)")

	cmd.AddCommand(
		newCompanionCmd(&f),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "feedtui %s (%s) built %s\n", host.Version, commit, date)
		},
	}
}

// runDashboard loads and validates the configuration before touching the
// terminal, then hands control to the host until the user quits.
func runDashboard(cmd *cobra.Command, f rootFlags) error {
	sources.UserAgent = "feedtui/" + host.Version

	// Config warnings go to stderr while the terminal is still ours to
	// print on.
	boot := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	h, res := host.Init(f.configPath,
		host.WithLogger(boot),
		host.WithMetricsAddr(f.metricsAddr),
		host.WithThemeDir(filepath.Join(config.DefaultDataDir(), "themes")),
	)
	if res != host.Success {
		return errors.New(h.LastError())
	}
	defer h.Shutdown()

	if err := terminal.Check(os.Stdin, os.Stdout); err != nil {
		return err
	}

	logPath := h.Config().General.LogFile
	if logPath == "" {
		logPath = config.DefaultLogFile()
	}
	logFile, err := openLog(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	h.SetLogger(newLogger(logFile, f.verbose))

	if res := h.Run(cmd.Context()); res != host.Success {
		return errors.New(h.LastError())
	}
	return nil
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
