package cli

import (
	"fmt"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/spf13/cobra"
)

var clearCmd = LeafCommand{
	Use:   "clear",
	Short: "Remove every meal planned in a week",
	BoolFlags: []BoolFlag{
		{Name: "yes", Short: "y", Usage: "skip confirmation prompt"},
	},
	StrFlags: []StringFlag{
		{Name: "week", Short: "w", Usage: "any date in the week to clear, or an ISO week number (default: this week)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		weekFlag, _ := cmd.Flags().GetString("week")
		yesFlag, _ := cmd.Flags().GetBool("yes")

		return runClear(cmd, a, weekFlag, confirmFor(cmd, yesFlag), time.Now)
	},
}.Build()

func runClear(cmd *cobra.Command, a *app, weekFlag string, confirm ConfirmFunc, nowFn func() time.Time) error {
	day, err := resolveWeek(weekFlag, nowFn())
	if err != nil {
		return err
	}
	ctrl := a.controller(day, nowFn)

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "  week:   %s\n", Primary(week.FormatRange(ctrl.Week())))

	_, cleared, err := ctrl.ClearWeek(cmdContext(cmd), confirm)
	n, _ := ctrl.Notice()
	switch {
	case n.Err:
		return &noticeError{text: n.Text, err: err}
	case err != nil && !cleared:
		return err
	case !cleared:
		_, _ = fmt.Fprintln(w, "cancelled")
		return nil
	}

	_, _ = fmt.Fprintln(w, Primary(n.Text))
	if err != nil {
		return fmt.Errorf("week cleared but could not be reloaded: %w", err)
	}
	return nil
}
