package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/board"
	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/spf13/cobra"
)

var moveCmd = LeafCommand{
	Use:     "move <meal-id>",
	Aliases: []string{"mv"},
	Short:   "Move a planned meal to another day or meal",
	Example: `  nutrify move 42 --date thursday
  nutrify move 42 --date 2025-06-05 --meal dinner --week 2025-06-02`,
	Args: cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "date", Short: "d", Usage: "target day"},
		{Name: "meal", Short: "m", Usage: "target meal (breakfast, lunch, snack, dinner)"},
		{Name: "week", Short: "w", Usage: "week the meal is planned in (default: this week)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		dateFlag, _ := cmd.Flags().GetString("date")
		mealFlag, _ := cmd.Flags().GetString("meal")
		weekFlag, _ := cmd.Flags().GetString("week")

		return runMove(cmd, a, args[0], dateFlag, mealFlag, weekFlag, time.Now)
	},
}.Build()

func runMove(cmd *cobra.Command, a *app, idArg, dateFlag, mealFlag, weekFlag string, nowFn func() time.Time) error {
	if dateFlag == "" && mealFlag == "" {
		return errors.New("pass --date, --meal or both")
	}

	ctx := cmdContext(cmd)
	now := nowFn()

	id, err := parseMealID(idArg)
	if err != nil {
		return err
	}
	day, err := resolveWeek(weekFlag, now)
	if err != nil {
		return err
	}

	target := plan.MealInput{}
	if dateFlag != "" {
		if target.Date, err = week.ParseDate(dateFlag, now); err != nil {
			return err
		}
	}
	if mealFlag != "" {
		if target.MealType, err = plan.ParseMealType(mealFlag); err != nil {
			return err
		}
	}

	ctrl, meal, err := a.findMeal(ctx, id, day, nowFn)
	if err != nil {
		return err
	}
	if target.Date.IsZero() {
		target.Date = meal.Date
	}
	if target.MealType == "" {
		target.MealType = meal.MealType
	}

	if week.SameDay(target.Date, meal.Date) && target.MealType == meal.MealType {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent(fmt.Sprintf("#%d is already planned there", id)))
		return nil
	}

	_, err = applyMutation(cmd, ctrl, board.Relocate(meal, target.Date, target.MealType))
	return err
}
