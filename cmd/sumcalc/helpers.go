package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vik-ma/local-lift-log-sub002/internal/presets"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

func (a *app) openStore(ctx context.Context) (*presets.SQLiteRepo, error) {
	dbPath := os.ExpandEnv(a.v.GetString("database.path"))
	if dbPath == "" {
		dbPath = os.ExpandEnv(defaultDBPath)
	}
	return presets.NewSQLiteRepo(ctx, dbPath)
}

// groupAndUnit reads the --group and --unit flags, defaulting the unit to
// the first unit of the group.
func groupAndUnit(cmd *cobra.Command) (units.Group, string, error) {
	groupName, _ := cmd.Flags().GetString("group")
	group, err := units.ParseGroup(groupName)
	if err != nil {
		return 0, "", err
	}

	unit, _ := cmd.Flags().GetString("unit")
	if unit == "" {
		unit = units.Units(group)[0]
	}
	if !units.IsValid(unit, group) {
		return 0, "", fmt.Errorf("unit [%s] is not a %s unit, use one of %s", unit, group, strings.Join(units.Units(group), ", "))
	}

	return group, unit, nil
}

func addGroupFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("group", "g", "weight", "unit group (weight, distance, measurement)")
	cmd.Flags().StringP("unit", "u", "", "active unit (default: first unit of the group)")
}

func printSession(w io.Writer, session sumcalc.Session) {
	if len(session.Items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("(empty list)"))
	}
	for i, item := range session.Items {
		line := fmt.Sprintf("%2d. %-20s %10s %s", i+1, item.Label, sumcalc.FormatNumber(item.Value), item.Unit)
		if m := item.EffectiveMultiplier(); m != 1 {
			line += " x" + sumcalc.FormatNumber(m)
		}
		fmt.Fprintln(w, line)
	}

	totals := sumcalc.Aggregate(session)
	fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("total: %s %s", sumcalc.FormatNumber(totals.Total), session.ActiveUnit)))
	if session.TotalMultiplier() != 1 {
		fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf(
			"result: %s %s (x%s)",
			sumcalc.FormatNumber(totals.Result),
			session.ActiveUnit,
			sumcalc.FormatNumber(session.TotalMultiplier()),
		)))
	}
}
