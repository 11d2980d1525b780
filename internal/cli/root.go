package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"nbacal/internal/config"
	appLog "nbacal/internal/log"
	"nbacal/internal/team"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "nbacal",
	Short: "Track NBA teams and publish their schedules as calendar feeds",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if debug {
			appLog.SetLevel(appLog.LevelDebug)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the CLI; SIGINT/SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// configPath resolves the effective config file location.
func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "nbacal", "config.yaml")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath())
}

// selection converts the persisted tracked set into the selector input.
func selection(cfg *config.Config) team.Selection {
	return team.Selection{
		Teams:       cfg.Tracked.Teams,
		Conferences: cfg.Tracked.Conferences,
		Divisions:   cfg.Tracked.Divisions,
	}
}
