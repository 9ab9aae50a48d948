package cli

import (
	"fmt"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/board"
	"github.com/spf13/cobra"
)

var weekCmd = LeafCommand{
	Use:   "week",
	Short: "Print the weekly meal plan",
	StrFlags: []StringFlag{
		{Name: "week", Short: "w", Usage: "any date in the week to show, or an ISO week number (default: this week)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		weekFlag, _ := cmd.Flags().GetString("week")

		return runWeek(cmd, a, weekFlag, time.Now)
	},
}.Build()

func runWeek(cmd *cobra.Command, a *app, weekFlag string, nowFn func() time.Time) error {
	day, err := resolveWeek(weekFlag, nowFn())
	if err != nil {
		return err
	}
	return printWeek(cmd, a, day, nowFn)
}

// printWeek fetches the week containing day and prints it without interaction.
// A failed fetch prints the standing error in place of the board.
func printWeek(cmd *cobra.Command, a *app, day time.Time, nowFn func() time.Time) error {
	w := cmd.OutOrStdout()
	ctrl := a.controller(day, nowFn)

	if err := ctrl.Refresh(cmdContext(cmd)); err != nil {
		_, _ = fmt.Fprint(w, renderLoadError(ctrl.Week(), err))
		return fmt.Errorf("%w: %w", errReported, err)
	}

	_, _ = fmt.Fprint(w, renderStaticBoard(ctrl, a.rows, nowFn()))
	return nil
}

func renderStaticBoard(ctrl *board.Controller, rows int, now time.Time) string {
	grid := ctrl.Grid()
	summary := fmt.Sprintf("%d meals planned", grid.Count())
	if grid.Count() == 1 {
		summary = "1 meal planned"
	}
	return renderBoard(boardView{
		grid:   grid,
		layout: layoutFor(120, rows),
		today:  now,
		footer: footerStyle.Render(summary),
	})
}
