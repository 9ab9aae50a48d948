package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/api"
	"github.com/Untitled-ITU/nutrify-sub000/internal/board"
	"github.com/Untitled-ITU/nutrify-sub000/internal/config"
	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/session"
	"github.com/Untitled-ITU/nutrify-sub000/internal/shopping"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/spf13/cobra"
)

// backend is everything the commands need from the REST API.
type backend interface {
	board.Planner
	Recipes(ctx context.Context, search string) ([]plan.Recipe, error)
	ShoppingList(ctx context.Context) ([]shopping.ShoppingListLine, error)
	CompareFridge(ctx context.Context) ([]shopping.FridgeLine, error)
}

// app bundles the configured backend and display settings.
type app struct {
	api   backend
	floor time.Time
	rows  int
}

// loadApp reads configuration from ~/.nutrify, the environment and .env.
func loadApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	workDir, _ := os.Getwd()

	cfg, err := config.Load(homeDir, workDir)
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}

func newApp(cfg *config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	floor, err := cfg.MinWeekDate(time.Local)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.BaseURL, session.NewStaticToken(cfg.Token),
		api.WithTimeout(timeout),
		api.WithLogger(slog.Default()),
	)
	return &app{api: client, floor: floor, rows: cfg.Rows()}, nil
}

func (a *app) controller(day time.Time, nowFn func() time.Time) *board.Controller {
	return board.NewController(a.api, day, board.WithFloor(a.floor), board.WithClock(nowFn))
}

// loadWeek fetches the week containing day.
func (a *app) loadWeek(ctx context.Context, day time.Time, nowFn func() time.Time) (*board.Controller, error) {
	ctrl := a.controller(day, nowFn)
	if err := ctrl.Refresh(ctx); err != nil {
		return ctrl, fmt.Errorf("could not load the week of %s: %w", week.FormatISO(ctrl.Week()), err)
	}
	return ctrl, nil
}

// findMeal loads the week containing day and looks up a meal by id.
func (a *app) findMeal(ctx context.Context, id int64, day time.Time, nowFn func() time.Time) (*board.Controller, plan.PlannedMeal, error) {
	ctrl, err := a.loadWeek(ctx, day, nowFn)
	if err != nil {
		return nil, plan.PlannedMeal{}, err
	}
	_, _, meal, ok := ctrl.Grid().Find(id)
	if !ok {
		return nil, plan.PlannedMeal{}, fmt.Errorf("meal %d is not planned in the week of %s (use --week)", id, week.FormatRange(ctrl.Week()))
	}
	return ctrl, meal, nil
}

// resolveWeek turns a --week flag into a Monday. Accepts an ISO week
// number of the current year or any date ParseDate understands.
func resolveWeek(flag string, now time.Time) (time.Time, error) {
	if flag == "" {
		return week.StartOfWeek(now), nil
	}
	if n, err := strconv.Atoi(flag); err == nil {
		if n < 1 || n > 53 {
			return time.Time{}, fmt.Errorf("invalid week number %d (expected 1-53)", n)
		}
		return week.ISOWeekStart(now.Year(), n, now.Location()), nil
	}
	d, err := week.ParseDate(flag, now)
	if err != nil {
		return time.Time{}, err
	}
	return week.StartOfWeek(d), nil
}

func parseMealID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid meal id %q", s)
	}
	return id, nil
}

func mealTitle(m plan.PlannedMeal) string {
	if m.RecipeTitle != "" {
		return m.RecipeTitle
	}
	if m.RecipeID > 0 {
		return fmt.Sprintf("Recipe %d", m.RecipeID)
	}
	return "(no recipe)"
}

func describeMeal(m plan.PlannedMeal) string {
	return fmt.Sprintf("%s, %s %s", mealTitle(m), m.Date.Format("Mon Jan 2"), m.MealType)
}

// noticeError carries the notice text of a failed change while keeping
// the underlying error reachable for errors.Is.
type noticeError struct {
	text string
	err  error
}

func (e *noticeError) Error() string { return e.text }
func (e *noticeError) Unwrap() error { return e.err }

// applyMutation runs mut through ctrl and prints the resulting notice.
// A failed change leaves the week untouched and returns its notice as the error.
func applyMutation(cmd *cobra.Command, ctrl *board.Controller, mut board.Mutation) (board.Outcome, error) {
	o, err := ctrl.Apply(cmdContext(cmd), mut)
	n, _ := ctrl.Notice()
	if n.Err {
		return o, &noticeError{text: n.Text, err: err}
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), Primary(n.Text))
	if err != nil {
		return o, fmt.Errorf("change saved but the week could not be reloaded: %w", err)
	}
	return o, nil
}

// pickRecipe resolves a --recipe value. A number is taken as a recipe id,
// anything else searches by title. An empty or ambiguous value is settled
// with sel; without sel it is an error.
func (a *app) pickRecipe(ctx context.Context, query string, sel SelectFunc) (plan.Recipe, error) {
	query = strings.TrimSpace(query)
	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		if id <= 0 {
			return plan.Recipe{}, fmt.Errorf("invalid recipe id %d", id)
		}
		return plan.Recipe{ID: id}, nil
	}

	recipes, err := a.api.Recipes(ctx, query)
	if err != nil {
		return plan.Recipe{}, fmt.Errorf("could not load recipes: %w", err)
	}
	if len(recipes) == 0 {
		if query == "" {
			return plan.Recipe{}, errors.New("no recipes available")
		}
		return plan.Recipe{}, fmt.Errorf("no recipe matches %q", query)
	}
	if query != "" {
		if len(recipes) == 1 {
			return recipes[0], nil
		}
		for _, r := range recipes {
			if strings.EqualFold(r.Title, query) {
				return r, nil
			}
		}
	}

	if sel == nil {
		if query == "" {
			return plan.Recipe{}, fmt.Errorf("%w (pass --recipe)", plan.ErrNoRecipe)
		}
		return plan.Recipe{}, fmt.Errorf("%d recipes match %q; pass a recipe id", len(recipes), query)
	}

	titles := make([]string, len(recipes))
	for i, r := range recipes {
		titles[i] = fmt.Sprintf("%s  #%d", r.Title, r.ID)
	}
	idx, err := sel("Pick a recipe", titles)
	if err != nil {
		return plan.Recipe{}, err
	}
	if idx < 0 || idx >= len(recipes) {
		return plan.Recipe{}, plan.ErrNoRecipe
	}
	return recipes[idx], nil
}

// pickMealType parses a --meal value, or asks with sel when it is empty.
func pickMealType(flag string, sel SelectFunc) (plan.MealType, error) {
	if flag != "" {
		return plan.ParseMealType(flag)
	}
	if sel == nil {
		return "", errors.New("--meal is required (breakfast, lunch, snack or dinner)")
	}
	labels := make([]string, len(plan.MealTypes))
	for i, mt := range plan.MealTypes {
		labels[i] = mt.Label()
	}
	idx, err := sel("Which meal?", labels)
	if err != nil {
		return "", err
	}
	return plan.MealTypeAt(idx), nil
}
