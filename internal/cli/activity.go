package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tempo/internal/core"
)

var addCmd = &cobra.Command{
	Use:   "add <activity> <hours>",
	Short: "Log an activity",
	Long: `Log an activity duration. Defaults to today; pass --date for another day.

Examples:
  tempo add Email 1.5 --category Work
  tempo add Run 0.75 --category Fitness --date 2026-08-30`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <date> <activity> <hours>",
	Short: "Change the duration of logged activities",
	Long: `Set a new duration on every record matching the date and activity name.
With --category only records in that category are touched.`,
	Args: cobra.ExactArgs(3),
	RunE: runEdit,
}

var removeCmd = &cobra.Command{
	Use:   "remove <date> <activity>",
	Short: "Delete logged activities",
	Long: `Delete every record matching the date and activity name. With --hours only
records with that exact duration go, which disambiguates same-name sessions.`,
	Args: cobra.ExactArgs(2),
	RunE: runRemove,
}

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List dates with recorded activity, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDates,
}

var listCmd = &cobra.Command{
	Use:   "list [date]",
	Short: "List a day's records",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's totals grouped by category",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

var (
	addCategory  string
	addDate      string
	editCategory string
	removeHours  float64
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(datesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(todayCmd)

	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category label (empty means uncategorized)")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Date to log under (default today)")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "Only edit records in this category")
	removeCmd.Flags().Float64Var(&removeHours, "hours", 0, "Only remove records with this exact duration")
}

func parseHours(arg string) (float64, error) {
	hours, err := strconv.ParseFloat(arg, 64)
	if err != nil || hours <= 0 {
		return 0, core.ErrInvalidDuration
	}
	return hours, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()
	ctx := context.Background()

	hours, err := parseHours(args[1])
	if err != nil {
		return err
	}

	date := addDate
	if date == "" {
		date = core.Today()
	}
	if date, err = core.ParseDate(date); err != nil {
		return err
	}

	if addCategory != "" {
		if err := app.store.AddCategory(ctx, addCategory); err != nil {
			return err
		}
	}
	if err := app.store.AddActivity(ctx, date, args[0], hours, addCategory); err != nil {
		return err
	}

	fmt.Printf("Logged %s: %s (%s)\n", date, args[0], formatHours(hours))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()
	ctx := context.Background()

	date, err := core.ParseDate(args[0])
	if err != nil {
		return err
	}
	hours, err := parseHours(args[2])
	if err != nil {
		return err
	}

	var affected int64
	if cmd.Flags().Changed("category") {
		affected, err = app.store.EditActivityInCategory(ctx, date, args[1], editCategory, hours)
	} else {
		affected, err = app.store.EditActivity(ctx, date, args[1], hours)
	}
	if err != nil {
		return err
	}

	if affected == 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("No records matched %s %q; nothing changed", date, args[1])))
		return nil
	}
	fmt.Printf("Updated %d record(s)\n", affected)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()
	ctx := context.Background()

	date, err := core.ParseDate(args[0])
	if err != nil {
		return err
	}

	var affected int64
	if cmd.Flags().Changed("hours") {
		affected, err = app.store.RemoveActivityByDuration(ctx, date, args[1], removeHours)
	} else {
		affected, err = app.store.RemoveActivity(ctx, date, args[1])
	}
	if err != nil {
		return err
	}

	if affected == 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("No records matched %s %q; nothing removed", date, args[1])))
		return nil
	}
	fmt.Printf("Removed %d record(s)\n", affected)
	return nil
}

func runDates(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()

	dates, err := app.store.GetDates(context.Background())
	if err != nil {
		return err
	}
	for _, d := range dates {
		fmt.Println(d)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()

	date := core.Today()
	if len(args) == 1 {
		var err error
		if date, err = core.ParseDate(args[0]); err != nil {
			return err
		}
	}

	records, err := app.store.GetActivitiesByDate(context.Background(), date)
	if err != nil {
		return err
	}
	fmt.Print(renderRecords(date, records))
	return nil
}

func runToday(cmd *cobra.Command, args []string) error {
	app, cleanup := openApp()
	defer cleanup()

	grouped, err := app.store.GetTodayActivitiesGroupedByCategory(context.Background())
	if err != nil {
		return err
	}
	fmt.Print(renderGrouped(grouped))
	return nil
}
