package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// newCompanionCmd creates "feedtui companion", which prints the persisted
// companion without starting the dashboard.
func newCompanionCmd(root *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "companion",
		Short: "Show companion status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root.configPath)
			if err != nil {
				return err
			}
			path := cfg.General.CompanionPath
			if path == "" {
				path = config.DefaultCompanionPath()
			}
			c, err := companion.NewFileStore(path).Load()
			if errors.Is(err, companion.ErrNotFound) {
				return fmt.Errorf("no companion yet at %s: run feedtui to meet one", path)
			}
			if err != nil {
				return fmt.Errorf("read companion: %w", err)
			}
			s := companion.RulesFromConfig(cfg.Companion).Summarize(c, time.Now())
			return writeSummary(cmd.OutOrStdout(), s, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

func writeSummary(w io.Writer, s companion.Summary, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		fmt.Fprintf(w, "%s the %s (%s)\n", s.Name, s.Species.Title(), s.Mood)
		fmt.Fprintf(w, "Level %d  %d/%d XP  x%.2f\n", s.Level, s.XP, s.XPToNext, s.Multiplier)
		fmt.Fprintf(w, "Skill points: %d\n", s.SkillPoints)
		fmt.Fprintf(w, "Skills: %s\n", strings.Join(s.Skills, ", "))
		fmt.Fprintf(w, "Outfit: %s (unlocked: %s)\n", s.Outfit, strings.Join(s.Outfits, ", "))
		fmt.Fprintf(w, "Visits: %d  Active: %s\n", s.Visits, s.ActiveTime)
		if s.LastVisit != "" {
			fmt.Fprintf(w, "Last visit: %s\n", s.LastVisit)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}
