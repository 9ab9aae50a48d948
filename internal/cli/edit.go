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

var editCmd = LeafCommand{
	Use:   "edit <meal-id>",
	Short: "Change a planned meal's recipe, day or meal",
	Example: `  nutrify edit 42 --recipe 7
  nutrify edit 42 --week 2025-06-02 --date friday --meal lunch`,
	Args: cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "recipe", Short: "r", Usage: "new recipe id or title"},
		{Name: "date", Short: "d", Usage: "new day"},
		{Name: "meal", Short: "m", Usage: "new meal (breakfast, lunch, snack, dinner)"},
		{Name: "week", Short: "w", Usage: "week the meal is planned in (default: this week)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return runEdit(cmd, a, args[0], readMealFlags(cmd), selectFor(cmd), time.Now)
	},
}.Build()

func runEdit(cmd *cobra.Command, a *app, idArg string, f mealFlags, sel SelectFunc, nowFn func() time.Time) error {
	ctx := cmdContext(cmd)
	now := nowFn()

	id, err := parseMealID(idArg)
	if err != nil {
		return err
	}
	day, err := resolveWeek(f.week, now)
	if err != nil {
		return err
	}
	ctrl, meal, err := a.findMeal(ctx, id, day, nowFn)
	if err != nil {
		return err
	}

	in := meal.Input()
	if f.date == "" && f.meal == "" && f.recipe == "" {
		if sel == nil {
			return errors.New("nothing to change (pass --recipe, --date or --meal)")
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Silent(fmt.Sprintf("#%d", meal.ID)), describeMeal(meal))
		recipe, err := a.pickRecipe(ctx, "", sel)
		if err != nil {
			return err
		}
		in.RecipeID = recipe.ID
	}
	if f.date != "" {
		d, err := week.ParseDate(f.date, now)
		if err != nil {
			return err
		}
		in.Date = d
	}
	if f.meal != "" {
		mt, err := plan.ParseMealType(f.meal)
		if err != nil {
			return err
		}
		in.MealType = mt
	}
	if f.recipe != "" {
		recipe, err := a.pickRecipe(ctx, f.recipe, sel)
		if err != nil {
			return err
		}
		in.RecipeID = recipe.ID
	}

	if sameInput(meal.Input(), in) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Silent("nothing to change"))
		return nil
	}

	_, err = applyMutation(cmd, ctrl, board.Update(id, in))
	return err
}

func sameInput(a, b plan.MealInput) bool {
	return week.SameDay(a.Date, b.Date) && a.MealType == b.MealType && a.RecipeID == b.RecipeID
}
