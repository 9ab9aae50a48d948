package cli

import (
	"fmt"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/board"
	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/spf13/cobra"
)

// mealFlags holds the flags shared by add and edit.
type mealFlags struct {
	recipe string
	date   string
	meal   string
	repeat string
	week   string
}

func readMealFlags(cmd *cobra.Command) mealFlags {
	var f mealFlags
	f.recipe, _ = cmd.Flags().GetString("recipe")
	f.date, _ = cmd.Flags().GetString("date")
	f.meal, _ = cmd.Flags().GetString("meal")
	if cmd.Flags().Lookup("repeat") != nil {
		f.repeat, _ = cmd.Flags().GetString("repeat")
	}
	f.week, _ = cmd.Flags().GetString("week")
	return f
}

var addCmd = LeafCommand{
	Use:   "add",
	Short: "Plan a recipe for a day and meal",
	Example: `  nutrify add --recipe 12 --date tomorrow --meal dinner
  nutrify add --recipe "overnight oats" --meal breakfast --repeat "every weekday"`,
	StrFlags: []StringFlag{
		{Name: "recipe", Short: "r", Usage: "recipe id or title (interactive picker if omitted)"},
		{Name: "date", Short: "d", Usage: "day to plan (today, tomorrow, monday, 2025-06-02)", Default: "today"},
		{Name: "meal", Short: "m", Usage: "breakfast, lunch, snack or dinner"},
		{Name: "repeat", Usage: `add on every matching day of the week ("every weekday", "every 2 days", FREQ=WEEKLY;BYDAY=MO,TH)`},
		{Name: "week", Short: "w", Usage: "week for --repeat (default: the week of --date)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return runAdd(cmd, a, readMealFlags(cmd), selectFor(cmd), time.Now)
	},
}.Build()

func runAdd(cmd *cobra.Command, a *app, f mealFlags, sel SelectFunc, nowFn func() time.Time) error {
	ctx := cmdContext(cmd)
	w := cmd.OutOrStdout()

	dates, err := addDates(f, nowFn())
	if err != nil {
		return err
	}
	mealType, err := pickMealType(f.meal, sel)
	if err != nil {
		return err
	}
	recipe, err := a.pickRecipe(ctx, f.recipe, sel)
	if err != nil {
		return err
	}

	ctrl := a.controller(dates[0], nowFn)
	added := 0
	for _, d := range dates {
		mut := board.Add(plan.MealInput{Date: d, MealType: mealType, RecipeID: recipe.ID})
		if err := mut.Validate(); err != nil {
			return err
		}
		o, err := mut.Run(ctx, a.api)
		ctrl.Finish(mut, o, err)
		if err != nil {
			n, _ := ctrl.Notice()
			if added > 0 {
				return &noticeError{text: fmt.Sprintf("%d of %d meals added before: %s", added, len(dates), n.Text), err: err}
			}
			return &noticeError{text: n.Text, err: err}
		}
		added++
		_, _ = fmt.Fprintf(w, "%s %s\n", Primary(mut.Success(o)), Silent(fmt.Sprintf("#%d", o.MealID)))
	}

	if err := ctrl.Refresh(ctx); err != nil {
		return fmt.Errorf("meals saved but the week could not be reloaded: %w", err)
	}
	if added > 1 {
		_, _ = fmt.Fprintf(w, "%s\n", Silent(fmt.Sprintf("%d meals added; %s now has %d planned",
			added, week.FormatRange(ctrl.Week()), ctrl.Grid().Count())))
	}
	return nil
}

// addDates resolves the days an add applies to: every match of --repeat in
// the chosen week, or the single --date.
func addDates(f mealFlags, now time.Time) ([]time.Time, error) {
	dateFlag := f.date
	if dateFlag == "" {
		dateFlag = "today"
	}

	if f.repeat == "" {
		d, err := week.ParseDate(dateFlag, now)
		if err != nil {
			return nil, err
		}
		return []time.Time{d}, nil
	}

	var monday time.Time
	if f.week != "" {
		m, err := resolveWeek(f.week, now)
		if err != nil {
			return nil, err
		}
		monday = m
	} else {
		d, err := week.ParseDate(dateFlag, now)
		if err != nil {
			return nil, err
		}
		monday = week.StartOfWeek(d)
	}

	dates, err := plan.RepeatDates(f.repeat, monday)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("%q matches no day in the week of %s", f.repeat, week.FormatRange(monday))
	}
	return dates, nil
}
