package cli

import (
	"fmt"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/board"
	"github.com/spf13/cobra"
)

var removeCmd = LeafCommand{
	Use:     "remove <meal-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a planned meal",
	Args:    cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Short: "y", Usage: "skip confirmation prompt"},
	},
	StrFlags: []StringFlag{
		{Name: "week", Short: "w", Usage: "week the meal is planned in (default: this week)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		weekFlag, _ := cmd.Flags().GetString("week")
		yesFlag, _ := cmd.Flags().GetBool("yes")

		return runRemove(cmd, a, args[0], weekFlag, confirmFor(cmd, yesFlag), time.Now)
	},
}.Build()

func runRemove(cmd *cobra.Command, a *app, idArg, weekFlag string, confirm ConfirmFunc, nowFn func() time.Time) error {
	id, err := parseMealID(idArg)
	if err != nil {
		return err
	}
	day, err := resolveWeek(weekFlag, nowFn())
	if err != nil {
		return err
	}
	ctrl, meal, err := a.findMeal(cmdContext(cmd), id, day, nowFn)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "  meal:   %s\n", Primary(mealTitle(meal)))
	_, _ = fmt.Fprintf(w, "  when:   %s %s\n", meal.Date.Format("Mon Jan 2"), MealType(meal.MealType))

	if confirm != nil {
		ok, err := confirm("Remove this meal?")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
	}

	_, err = applyMutation(cmd, ctrl, board.Delete(id))
	return err
}
