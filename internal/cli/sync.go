package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nbacal/internal/config"
	"nbacal/internal/nba"
	calsync "nbacal/internal/sync"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with defaults",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if initSeason != "" {
			cfg.Season = initSeason
			if err := cfg.Save(configPath()); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config ready at %s (season %s)\n", configPath(), cfg.Season)
		return nil
	},
}

var initSeason string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the schedule and regenerate the tracked calendar files",
	RunE:  runSync,
}

func init() {
	initCmd.Flags().StringVar(&initSeason, "season", "", `season identifier, e.g. "2024-25" (default: current season)`)
	rootCmd.AddCommand(initCmd, syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reports, err := newSyncer(cfg).Run(cmd.Context(), selection(cfg), cfg.Season)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "%s  FAILED: %v\n", r.Team, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s  +%d ~%d -%d (%d unchanged)  %s\n",
			r.Team, r.Added, r.Updated, r.Removed, r.Unchanged, r.Path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d team syncs failed", failed, len(reports))
	}
	return nil
}

func newSyncer(cfg *config.Config) *calsync.Syncer {
	client := nba.NewClient(cfg.CacheDir)
	return calsync.New(client, cfg.CalendarsDir, cfg.Location())
}
