package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/core"
	"tempo/internal/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Per-day per-category totals over a rolling window",
	Long: `Show summed hours grouped by day and category for a trailing window.

Examples:
  tempo summary              # last 7 days
  tempo summary --days 30
  tempo summary --days 365`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var productivityCmd = &cobra.Command{
	Use:   "productivity [date]",
	Short: "Daily productivity metrics",
	Long: `Show tracked, exercise and improvement hours for a day, plus the ratio of
tracked hours to hours elapsed since midnight. Which categories count as
exercise or improvement comes from TEMPO_EXERCISE_CATEGORIES and
TEMPO_IMPROVEMENT_CATEGORIES.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProductivity,
}

var summaryDays int

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(productivityCmd)

	summaryCmd.Flags().IntVar(&summaryDays, "days", 7, "Window length: 7, 30 or 365")
}

func (a *app) summaryService() *summary.Service {
	classification := core.NewClassification(a.cfg.ExerciseCategories, a.cfg.ImprovementCategories)
	return summary.NewService(a.store, classification)
}

func runSummary(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()

	window, err := summary.WindowFromDays(summaryDays)
	if err != nil {
		return err
	}

	result, err := app.summaryService().WindowSummary(context.Background(), window)
	if err != nil {
		return err
	}
	fmt.Print(renderWindowSummary(int(window), result))
	return nil
}

func runProductivity(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()

	date := core.Today()
	if len(args) == 1 {
		var err error
		if date, err = core.ParseDate(args[0]); err != nil {
			return err
		}
	}

	report, err := app.summaryService().Productivity(context.Background(), date, time.Now())
	if err != nil {
		return err
	}
	fmt.Print(renderProductivity(report))
	return nil
}
