package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

var (
	periodDate  string
	periodShift int
)

var quarterCmd = &cobra.Command{
	Use:   "quarter",
	Short: "Print the quarter containing --date and its range",
	RunE:  runQuarter,
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print the Monday that starts the week of --date",
	RunE:  runWeek,
}

var periodCmd = &cobra.Command{
	Use:   "period NAME",
	Short: "Print the [from, to) window of a dashboard period",
	Long: `Print the half-open window of a dashboard period around --date.

NAME is one of today, this-week, this-month, last-month, last-4-weeks or
this-quarter. --shift moves the anchor that many steps back or forward first.`,
	Args: cobra.ExactArgs(1),
	RunE: runPeriod,
}

func init() {
	for _, c := range []*cobra.Command{quarterCmd, weekCmd, periodCmd} {
		c.Flags().StringVar(&periodDate, "date", "", "reference date YYYY-MM-DD (default today)")
	}
	periodCmd.Flags().IntVar(&periodShift, "shift", 0, "steps to move the anchor (negative goes back)")
}

func referenceDate() (time.Time, error) {
	if periodDate == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, periodDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: use YYYY-MM-DD", periodDate)
	}
	return t, nil
}

func runQuarter(cmd *cobra.Command, args []string) error {
	date, err := referenceDate()
	if err != nil {
		return err
	}
	q := domain.CurrentQuarter(date)
	from, to := domain.QuarterRange(date.Year(), q, time.UTC)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d: %s .. %s\n", q, date.Year(), from.Format(time.DateOnly), to.Format(time.DateOnly))
	return nil
}

func runWeek(cmd *cobra.Command, args []string) error {
	date, err := referenceDate()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), domain.WeekStart(date).Format(time.DateOnly))
	return nil
}

func runPeriod(cmd *cobra.Command, args []string) error {
	period, err := domain.ParsePeriod(args[0])
	if err != nil {
		return err
	}
	date, err := referenceDate()
	if err != nil {
		return err
	}

	anchor := date
	step := 1
	if periodShift < 0 {
		step = -1
	}
	for i := 0; i != periodShift; i += step {
		anchor = domain.ShiftPeriod(anchor, period, step)
	}

	from, to := domain.PeriodRange(anchor, period)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s .. %s\n", period, from.Format(time.DateOnly), to.Format(time.DateOnly))
	return nil
}
