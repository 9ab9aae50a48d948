package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/shopping"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/spf13/cobra"
)

// Wednesday of the week starting Jun 2, 2025.
var testNow = time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func testDay(offset int) time.Time {
	return time.Date(2025, 6, 2+offset, 0, 0, 0, 0, time.UTC)
}

// fakeBackend keeps meals in memory and records every request by name.
type fakeBackend struct {
	mu      sync.Mutex
	meals   []plan.PlannedMeal
	recipes []plan.Recipe
	list    []shopping.ShoppingListLine
	fridge  []shopping.FridgeLine
	nextID  int64
	calls   []string
	errs    map[string]error
	// okCalls lets the first n calls of an op succeed before errs applies.
	okCalls map[string]int
}

func newFakeBackend(meals ...plan.PlannedMeal) *fakeBackend {
	return &fakeBackend{meals: meals, nextID: 100, errs: map[string]error{}, okCalls: map[string]int{}}
}

func (f *fakeBackend) record(op string) error {
	f.calls = append(f.calls, op)
	if f.okCalls[op] > 0 {
		f.okCalls[op]--
		return nil
	}
	return f.errs[op]
}

func (f *fakeBackend) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) meal(id int64) (plan.PlannedMeal, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.meals {
		if m.ID == id {
			return m, true
		}
	}
	return plan.PlannedMeal{}, false
}

func (f *fakeBackend) title(id int64) string {
	for _, r := range f.recipes {
		if r.ID == id {
			return r.Title
		}
	}
	return ""
}

func (f *fakeBackend) Weekly(_ context.Context, monday time.Time) ([]plan.PlannedMeal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("weekly"); err != nil {
		return nil, err
	}
	var out []plan.PlannedMeal
	for _, m := range f.meals {
		if week.Contains(monday, m.Date) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeBackend) AddMeal(_ context.Context, in plan.MealInput) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("add"); err != nil {
		return 0, err
	}
	f.nextID++
	f.meals = append(f.meals, plan.PlannedMeal{
		ID:          f.nextID,
		Date:        in.Date,
		MealType:    in.MealType,
		RecipeID:    in.RecipeID,
		RecipeTitle: f.title(in.RecipeID),
	})
	return f.nextID, nil
}

func (f *fakeBackend) UpdateMeal(_ context.Context, id int64, in plan.MealInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("update"); err != nil {
		return err
	}
	for i := range f.meals {
		if f.meals[i].ID == id {
			f.meals[i].Date = in.Date
			f.meals[i].MealType = in.MealType
			if in.RecipeID != f.meals[i].RecipeID {
				f.meals[i].RecipeID = in.RecipeID
				f.meals[i].RecipeTitle = f.title(in.RecipeID)
			}
		}
	}
	return nil
}

func (f *fakeBackend) DeleteMeal(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete"); err != nil {
		return err
	}
	kept := f.meals[:0]
	for _, m := range f.meals {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	f.meals = kept
	return nil
}

func (f *fakeBackend) ClearWeek(_ context.Context, monday time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("clear"); err != nil {
		return 0, err
	}
	kept := f.meals[:0]
	n := 0
	for _, m := range f.meals {
		if week.Contains(monday, m.Date) {
			n++
			continue
		}
		kept = append(kept, m)
	}
	f.meals = kept
	return n, nil
}

func (f *fakeBackend) Recipes(_ context.Context, search string) ([]plan.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("recipes"); err != nil {
		return nil, err
	}
	var out []plan.Recipe
	for _, r := range f.recipes {
		if strings.Contains(strings.ToLower(r.Title), strings.ToLower(search)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBackend) ShoppingList(_ context.Context) ([]shopping.ShoppingListLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("shopping-list"); err != nil {
		return nil, err
	}
	return f.list, nil
}

func (f *fakeBackend) CompareFridge(_ context.Context) ([]shopping.FridgeLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("compare-fridge"); err != nil {
		return nil, err
	}
	return f.fridge, nil
}

func testApp(f *fakeBackend) *app {
	return &app{api: f, rows: 3}
}

// newTestCmd returns a bare command writing to the returned buffer.
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	out := new(bytes.Buffer)
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(""))
	return cmd, out
}

func pancakes() plan.PlannedMeal {
	return plan.PlannedMeal{ID: 1, Date: testDay(2), MealType: plan.Breakfast, RecipeID: 10, RecipeTitle: "Pancakes"}
}

func soup() plan.PlannedMeal {
	return plan.PlannedMeal{ID: 2, Date: testDay(4), MealType: plan.Dinner, RecipeID: 20, RecipeTitle: "Soup"}
}
