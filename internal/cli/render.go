package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tempo/internal/core"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4A90E2"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func formatHours(hours float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", hours), "0"), ".") + "h"
}

func renderRecords(date string, records []core.ActivityRecord) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(date) + "\n")
	if len(records) == 0 {
		b.WriteString(dimStyle.Render("no records") + "\n")
		return b.String()
	}
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = "-"
		}
		activity := r.Activity
		if activity == "" {
			activity = "(imported)"
		}
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			categoryStyle.Render(category), activity, formatHours(r.Duration))
	}
	return b.String()
}

func renderGrouped(grouped map[string][]core.ActivityTotal) string {
	if len(grouped) == 0 {
		return dimStyle.Render("nothing tracked today") + "\n"
	}

	categories := make([]string, 0, len(grouped))
	for c := range grouped {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var b strings.Builder
	for _, c := range categories {
		label := c
		if label == "" {
			label = "(uncategorized)"
		}
		b.WriteString(categoryStyle.Render(label) + "\n")
		for _, t := range grouped[c] {
			activity := t.Activity
			if activity == "" {
				activity = "(imported)"
			}
			fmt.Fprintf(&b, "  %s  %s\n", activity, formatHours(t.Hours))
		}
	}
	return b.String()
}

func renderWindowSummary(days int, result map[string]map[string]float64) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Last %d days", days)) + "\n")
	if len(result) == 0 {
		b.WriteString(dimStyle.Render("no records in window") + "\n")
		return b.String()
	}

	dates := make([]string, 0, len(result))
	for d := range result {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for _, d := range dates {
		byCategory := result[d]
		categories := make([]string, 0, len(byCategory))
		var total float64
		for c, h := range byCategory {
			categories = append(categories, c)
			total += h
		}
		sort.Strings(categories)

		fmt.Fprintf(&b, "%s  %s\n", d, formatHours(total))
		for _, c := range categories {
			label := c
			if label == "" {
				label = "(uncategorized)"
			}
			fmt.Fprintf(&b, "  %s  %s\n", categoryStyle.Render(label), formatHours(byCategory[c]))
		}
	}
	return b.String()
}

func renderProductivity(report core.ProductivityReport) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Productivity "+report.Date) + "\n")
	fmt.Fprintf(&b, "  tracked      %s\n", formatHours(report.TrackedHours))
	fmt.Fprintf(&b, "  exercise     %s\n", formatHours(report.ExerciseHours))
	fmt.Fprintf(&b, "  improvement  %s\n", formatHours(report.ImprovementHours))
	if report.Defined {
		fmt.Fprintf(&b, "  ratio        %.2f\n", report.Ratio)
	} else {
		b.WriteString("  ratio        " + dimStyle.Render("undefined (midnight)") + "\n")
	}
	return b.String()
}
