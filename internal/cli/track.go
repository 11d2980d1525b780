package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nbacal/internal/team"
)

var (
	trackTeams       []string
	trackConferences []string
	trackDivisions   []string
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Add teams, conferences or divisions to the tracked set",
	Example: `  nbacal track --team LAL --team BOS
  nbacal track --conference East
  nbacal track --division Pacific`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return editTracked(cmd, true)
	},
}

var untrackCmd = &cobra.Command{
	Use:   "untrack",
	Short: "Remove teams, conferences or divisions from the tracked set",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return editTracked(cmd, false)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the tracked selection and the teams it resolves to",
	RunE:  runStatus,
}

func init() {
	for _, c := range []*cobra.Command{trackCmd, untrackCmd} {
		c.Flags().StringSliceVar(&trackTeams, "team", nil, "team code, e.g. LAL (repeatable)")
		c.Flags().StringSliceVar(&trackConferences, "conference", nil, "East or West (repeatable)")
		c.Flags().StringSliceVar(&trackDivisions, "division", nil, "division name, e.g. Pacific (repeatable)")
	}
	rootCmd.AddCommand(trackCmd, untrackCmd, statusCmd)
}

// editTracked applies track/untrack flag values to the config after
// validating every name against the registry.
func editTracked(cmd *cobra.Command, add bool) error {
	if len(trackTeams) == 0 && len(trackConferences) == 0 && len(trackDivisions) == 0 {
		return fmt.Errorf("nothing to change: pass --team, --conference or --division")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	for _, code := range trackTeams {
		t, ok := team.Lookup(code)
		if !ok {
			return &team.UnknownTeamError{Kind: "team", Name: code}
		}
		cfg.Tracked.Teams = editList(cfg.Tracked.Teams, t.Code, add)
	}
	for _, name := range trackConferences {
		conf, ok := team.ParseConference(name)
		if !ok {
			return &team.UnknownTeamError{Kind: "conference", Name: name}
		}
		cfg.Tracked.Conferences = editList(cfg.Tracked.Conferences, string(conf), add)
	}
	for _, name := range trackDivisions {
		div, ok := team.ParseDivision(name)
		if !ok {
			return &team.UnknownTeamError{Kind: "division", Name: name}
		}
		cfg.Tracked.Divisions = editList(cfg.Tracked.Divisions, string(div), add)
	}

	if err := cfg.Save(configPath()); err != nil {
		return err
	}

	resolved, err := team.Resolve(selection(cfg))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Tracked selection now resolves to %d team(s)\n", len(resolved))
	return nil
}

// editList adds or removes a value, keeping entries unique and stable.
func editList(list []string, v string, add bool) []string {
	out := make([]string, 0, len(list)+1)
	found := false
	for _, cur := range list {
		if cur == v {
			found = true
			if !add {
				continue
			}
		}
		out = append(out, cur)
	}
	if add && !found {
		out = append(out, v)
	}
	return out
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config:  %s\n", configPath())
	fmt.Fprintf(out, "Season:  %s\n", cfg.Season)
	fmt.Fprintf(out, "Output:  %s\n", cfg.CalendarsDir)

	if cfg.Tracked.Empty() {
		fmt.Fprintln(out, "Nothing tracked yet; run `nbacal track` first.")
		return nil
	}

	if len(cfg.Tracked.Teams) > 0 {
		fmt.Fprintf(out, "Teams:       %s\n", strings.Join(cfg.Tracked.Teams, ", "))
	}
	if len(cfg.Tracked.Conferences) > 0 {
		fmt.Fprintf(out, "Conferences: %s\n", strings.Join(cfg.Tracked.Conferences, ", "))
	}
	if len(cfg.Tracked.Divisions) > 0 {
		fmt.Fprintf(out, "Divisions:   %s\n", strings.Join(cfg.Tracked.Divisions, ", "))
	}

	resolved, err := team.Resolve(selection(cfg))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Resolved (%d):\n", len(resolved))
	for _, t := range resolved {
		fmt.Fprintf(out, "  %s  %-25s %s / %s\n", t.Code, t.Name, t.Conference, t.Division)
	}
	return nil
}
