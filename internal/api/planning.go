package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
)

type recipeInfo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type mealInfo struct {
	ID     int64       `json:"id"`
	Recipe *recipeInfo `json:"recipe"`
}

type weekDay struct {
	Date  string               `json:"date"`
	Meals map[string]*mealInfo `json:"meals"`
}

type weeklyResponse struct {
	WeekStart string    `json:"week_start"`
	Days      []weekDay `json:"days"`
}

type mealBody struct {
	PlanDate string `json:"plan_date"`
	MealType string `json:"meal_type"`
	RecipeID int64  `json:"recipe_id"`
}

type mealResponse struct {
	Msg        string `json:"msg"`
	MealPlanID int64  `json:"meal_plan_id"`
}

type clearWeekResponse struct {
	DeletedCount int `json:"deleted_count"`
}

func weekQuery(monday time.Time) url.Values {
	return url.Values{"start_date": {week.FormatISO(week.StartOfWeek(monday))}}
}

func newMealBody(in plan.MealInput) mealBody {
	return mealBody{
		PlanDate: week.FormatISO(in.Date),
		MealType: string(in.MealType),
		RecipeID: in.RecipeID,
	}
}

// Weekly fetches the meals planned in the week starting at monday.
// Empty slots are skipped.
func (c *Client) Weekly(ctx context.Context, monday time.Time) ([]plan.PlannedMeal, error) {
	var resp weeklyResponse
	if err := c.do(ctx, http.MethodGet, "/planning/weekly", weekQuery(monday), nil, &resp); err != nil {
		return nil, err
	}

	var meals []plan.PlannedMeal
	for _, day := range resp.Days {
		date, err := week.ParseISO(day.Date, c.loc)
		if err != nil {
			return nil, fmt.Errorf("invalid day %q in weekly plan: %w", day.Date, err)
		}
		for _, mt := range plan.MealTypes {
			info := day.Meals[string(mt)]
			if info == nil {
				continue
			}
			meal := plan.PlannedMeal{ID: info.ID, Date: date, MealType: mt}
			if info.Recipe != nil {
				meal.RecipeID = info.Recipe.ID
				meal.RecipeTitle = info.Recipe.Title
			}
			meals = append(meals, meal)
		}
	}
	return meals, nil
}

// AddMeal plans a recipe into a cell and returns the meal id.
// The backend replaces an existing meal in the same cell.
func (c *Client) AddMeal(ctx context.Context, in plan.MealInput) (int64, error) {
	var resp mealResponse
	if err := c.do(ctx, http.MethodPost, "/planning/meals", nil, newMealBody(in), &resp); err != nil {
		return 0, err
	}
	return resp.MealPlanID, nil
}

// UpdateMeal changes the date, meal type, or recipe of a meal.
func (c *Client) UpdateMeal(ctx context.Context, id int64, in plan.MealInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/planning/meals/%d", id), nil, newMealBody(in), nil)
}

// DeleteMeal removes a meal from the plan.
func (c *Client) DeleteMeal(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/planning/meals/%d", id), nil, nil, nil)
}

// ClearWeek removes every meal in the week starting at monday.
func (c *Client) ClearWeek(ctx context.Context, monday time.Time) (int, error) {
	var resp clearWeekResponse
	if err := c.do(ctx, http.MethodDelete, "/planning/clear-week", weekQuery(monday), nil, &resp); err != nil {
		return 0, err
	}
	return resp.DeletedCount, nil
}
