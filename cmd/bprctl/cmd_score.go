package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bpr-hq/bpr-dashboard/internal/config"
	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

var (
	scoreScoringFile string
	scoreJSON        bool
)

// scoreCmd scores a department described in a YAML (or JSON) file without a
// server or database.
var scoreCmd = &cobra.Command{
	Use:   "score FILE",
	Short: "Score a department from a YAML or JSON file",
	Long: `Score a department offline. The file lists victory targets and power moves:

  targets:
    - title: New customers
      target: 40
      achieved: 31
  power_moves:
    - name: Discovery calls
      target_per_cycle: 10
      progress: 7

Thresholds and weighting come from --scoring (same format as SCORING_FILE).`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreScoringFile, "scoring", "", "scoring rules YAML (thresholds, weighting)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the full score as JSON")
}

type departmentFile struct {
	Department string `yaml:"department"`
	Targets    []struct {
		Title    string  `yaml:"title"`
		Target   float64 `yaml:"target"`
		Achieved float64 `yaml:"achieved"`
		Unit     string  `yaml:"unit"`
	} `yaml:"targets"`
	PowerMoves []struct {
		Name           string           `yaml:"name"`
		Frequency      domain.Frequency `yaml:"frequency"`
		TargetPerCycle int              `yaml:"target_per_cycle"`
		Progress       int              `yaml:"progress"`
	} `yaml:"power_moves"`
}

func loadDepartmentFile(path string) ([]*domain.VictoryTarget, []*domain.PowerMove, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	var f departmentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, "", fmt.Errorf("parse %s: %w", path, err)
	}

	targets := make([]*domain.VictoryTarget, 0, len(f.Targets))
	for i, t := range f.Targets {
		targets = append(targets, &domain.VictoryTarget{
			ID:       fmt.Sprintf("t%d", i+1),
			Title:    t.Title,
			Target:   t.Target,
			Achieved: t.Achieved,
			Unit:     t.Unit,
		})
	}
	moves := make([]*domain.PowerMove, 0, len(f.PowerMoves))
	for i, m := range f.PowerMoves {
		moves = append(moves, &domain.PowerMove{
			ID:             fmt.Sprintf("p%d", i+1),
			Name:           m.Name,
			Frequency:      m.Frequency,
			TargetPerCycle: m.TargetPerCycle,
			Progress:       m.Progress,
		})
	}
	return targets, moves, f.Department, nil
}

func runScore(cmd *cobra.Command, args []string) error {
	opts := domain.DefaultScoreOptions()
	if scoreScoringFile != "" {
		var err error
		if opts, err = config.LoadScoring(scoreScoringFile); err != nil {
			return err
		}
	}

	targets, moves, dept, err := loadDepartmentFile(args[0])
	if err != nil {
		return err
	}

	score := domain.AggregateDepartmentScore(targets, moves, opts)
	score.Department = dept

	out := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(score)
	}

	label := score.Status.Label()
	fmt.Fprintf(out, "Average: %d%% (%s, %s)\n", score.AverageScore, label.Label, label.Color)
	fmt.Fprintf(out, "On track: %d of %d targets\n", score.GreenCount, score.TotalTargets)
	if score.PowerMoveCount > 0 {
		fmt.Fprintf(out, "Power moves: %d%% across %d\n", score.PowerMoveScore, score.PowerMoveCount)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nTARGET\tPROGRESS\tSTATUS")
	for _, t := range score.UpdatedTargets {
		fmt.Fprintf(tw, "%s\t%d%%\t%s\n", t.Title, t.Percentage, t.Label.Label)
	}
	return tw.Flush()
}
