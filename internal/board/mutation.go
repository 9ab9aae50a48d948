package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
)

// Planner is the subset of the backend the board drives.
type Planner interface {
	Weekly(ctx context.Context, monday time.Time) ([]plan.PlannedMeal, error)
	AddMeal(ctx context.Context, in plan.MealInput) (int64, error)
	UpdateMeal(ctx context.Context, id int64, in plan.MealInput) error
	DeleteMeal(ctx context.Context, id int64) error
	ClearWeek(ctx context.Context, monday time.Time) (int, error)
}

// Kind identifies a mutating request.
type Kind int

const (
	KindAdd Kind = iota + 1
	KindUpdate
	KindRelocate
	KindDelete
	KindClearWeek
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindUpdate:
		return "update"
	case KindRelocate:
		return "relocate"
	case KindDelete:
		return "delete"
	case KindClearWeek:
		return "clear-week"
	default:
		return "unknown"
	}
}

// Mutation is one user action that maps to exactly one request.
type Mutation struct {
	Kind   Kind
	MealID int64
	Input  plan.MealInput
	Monday time.Time
}

// Outcome carries what a successful request reported.
type Outcome struct {
	MealID  int64
	Deleted int
}

// Add plans a new meal.
func Add(in plan.MealInput) Mutation {
	return Mutation{Kind: KindAdd, Input: in}
}

// Update edits an existing meal in place.
func Update(id int64, in plan.MealInput) Mutation {
	return Mutation{Kind: KindUpdate, MealID: id, Input: in}
}

// Relocate moves meal to another cell, keeping its recipe.
func Relocate(meal plan.PlannedMeal, date time.Time, mealType plan.MealType) Mutation {
	return Mutation{
		Kind:   KindRelocate,
		MealID: meal.ID,
		Input:  plan.MealInput{Date: date, MealType: mealType, RecipeID: meal.RecipeID},
	}
}

// Delete removes a meal.
func Delete(id int64) Mutation {
	return Mutation{Kind: KindDelete, MealID: id}
}

// ClearWeek removes every meal of the week starting at monday.
func ClearWeek(monday time.Time) Mutation {
	return Mutation{Kind: KindClearWeek, Monday: week.StartOfWeek(monday)}
}

// Validate rejects a mutation before any request is sent.
func (m Mutation) Validate() error {
	switch m.Kind {
	case KindAdd:
		return m.Input.Validate()
	case KindUpdate, KindRelocate:
		if m.MealID <= 0 {
			return errors.New("no meal selected")
		}
		return m.Input.Validate()
	case KindDelete:
		if m.MealID <= 0 {
			return errors.New("no meal selected")
		}
		return nil
	case KindClearWeek:
		if m.Monday.IsZero() {
			return errors.New("no week selected")
		}
		return nil
	default:
		return fmt.Errorf("unknown mutation %d", m.Kind)
	}
}

// Run validates m and issues its single request.
func (m Mutation) Run(ctx context.Context, p Planner) (Outcome, error) {
	if err := m.Validate(); err != nil {
		return Outcome{}, err
	}

	switch m.Kind {
	case KindAdd:
		id, err := p.AddMeal(ctx, m.Input)
		return Outcome{MealID: id}, err
	case KindUpdate, KindRelocate:
		return Outcome{MealID: m.MealID}, p.UpdateMeal(ctx, m.MealID, m.Input)
	case KindDelete:
		return Outcome{MealID: m.MealID}, p.DeleteMeal(ctx, m.MealID)
	default:
		n, err := p.ClearWeek(ctx, m.Monday)
		return Outcome{Deleted: n}, err
	}
}

// Success is the notice shown after the request succeeds.
func (m Mutation) Success(o Outcome) string {
	switch m.Kind {
	case KindAdd:
		return fmt.Sprintf("Added to %s", slotName(m.Input))
	case KindUpdate:
		return "Meal updated"
	case KindRelocate:
		return fmt.Sprintf("Moved to %s", slotName(m.Input))
	case KindDelete:
		return "Meal removed"
	default:
		return fmt.Sprintf("Week cleared (%d removed)", o.Deleted)
	}
}

// Failure is the notice shown when the request fails.
func (m Mutation) Failure(err error) string {
	verb := map[Kind]string{
		KindAdd:       "add meal",
		KindUpdate:    "update meal",
		KindRelocate:  "move meal",
		KindDelete:    "remove meal",
		KindClearWeek: "clear week",
	}[m.Kind]
	if verb == "" {
		verb = "apply change"
	}
	return fmt.Sprintf("Could not %s: %s", verb, err)
}

func slotName(in plan.MealInput) string {
	return fmt.Sprintf("%s %s", in.Date.Format("Mon Jan 2"), in.MealType)
}
