package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time { return monday.AddDate(0, 0, offset) }

type call struct {
	Op    string
	ID    int64
	Input plan.MealInput
	Week  time.Time
}

// fakePlanner records every request and serves an in-memory plan.
type fakePlanner struct {
	meals  []plan.PlannedMeal
	calls  []call
	failOn string
	err    error
	nextID int64
}

func newFakePlanner(meals ...plan.PlannedMeal) *fakePlanner {
	return &fakePlanner{meals: meals, nextID: 100}
}

func (f *fakePlanner) fail(op string) error {
	if f.failOn == op {
		return f.err
	}
	return nil
}

func (f *fakePlanner) Weekly(_ context.Context, m time.Time) ([]plan.PlannedMeal, error) {
	f.calls = append(f.calls, call{Op: "weekly", Week: m})
	if err := f.fail("weekly"); err != nil {
		return nil, err
	}
	out := make([]plan.PlannedMeal, 0, len(f.meals))
	for _, meal := range f.meals {
		if week.Contains(m, meal.Date) {
			out = append(out, meal)
		}
	}
	return out, nil
}

func (f *fakePlanner) AddMeal(_ context.Context, in plan.MealInput) (int64, error) {
	f.calls = append(f.calls, call{Op: "add", Input: in})
	if err := f.fail("add"); err != nil {
		return 0, err
	}
	f.nextID++
	f.meals = append(f.meals, plan.PlannedMeal{ID: f.nextID, Date: in.Date, MealType: in.MealType, RecipeID: in.RecipeID})
	return f.nextID, nil
}

func (f *fakePlanner) UpdateMeal(_ context.Context, id int64, in plan.MealInput) error {
	f.calls = append(f.calls, call{Op: "update", ID: id, Input: in})
	if err := f.fail("update"); err != nil {
		return err
	}
	for i := range f.meals {
		if f.meals[i].ID == id {
			f.meals[i].Date = in.Date
			f.meals[i].MealType = in.MealType
			f.meals[i].RecipeID = in.RecipeID
		}
	}
	return nil
}

func (f *fakePlanner) DeleteMeal(_ context.Context, id int64) error {
	f.calls = append(f.calls, call{Op: "delete", ID: id})
	if err := f.fail("delete"); err != nil {
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

func (f *fakePlanner) ClearWeek(_ context.Context, m time.Time) (int, error) {
	f.calls = append(f.calls, call{Op: "clear", Week: m})
	if err := f.fail("clear"); err != nil {
		return 0, err
	}
	kept := f.meals[:0]
	n := 0
	for _, meal := range f.meals {
		if week.Contains(m, meal.Date) {
			n++
			continue
		}
		kept = append(kept, meal)
	}
	f.meals = kept
	return n, nil
}

func (f *fakePlanner) ops() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Op
	}
	return out
}

func pancakes() plan.PlannedMeal {
	return plan.PlannedMeal{ID: 1, Date: day(0), MealType: plan.Breakfast, RecipeID: 10, RecipeTitle: "Pancakes"}
}

func loadedController(t *testing.T, f *fakePlanner) *Controller {
	t.Helper()
	c := NewController(f, day(2))
	require.NoError(t, c.Refresh(context.Background()))
	f.calls = nil
	return c
}

func TestBucket(t *testing.T) {
	assert.Equal(t, 0, Bucket(0, 3))
	assert.Equal(t, 0, Bucket(2, 3))
	assert.Equal(t, 1, Bucket(3, 3))
	assert.Equal(t, 3, Bucket(11, 3))
	assert.Equal(t, 3, Bucket(50, 3))
	assert.Equal(t, 0, Bucket(-4, 3))
	assert.Equal(t, 2, Bucket(2, 0))
}

func TestDragDropRelocatesOnce(t *testing.T) {
	f := newFakePlanner(pancakes())
	c := loadedController(t, f)
	d := c.Drag()

	require.True(t, d.Begin(pancakes()))
	d.Hover(1, 10, 3)
	preview, ok := d.Preview()
	require.True(t, ok)
	assert.Equal(t, Cell{Day: 1, Slot: 3}, preview)

	m, ok := d.Drop(c.Dates())
	require.True(t, ok)
	assert.Equal(t, Relocating, d.State())
	_, ok = d.Preview()
	assert.False(t, ok)

	_, err := c.Apply(context.Background(), m)
	require.NoError(t, err)

	assert.Equal(t, []string{"update", "weekly"}, f.ops())
	assert.Equal(t, plan.MealInput{Date: day(1), MealType: plan.Dinner, RecipeID: 10}, f.calls[0].Input)
	assert.Equal(t, Resting, d.State())

	_, slot, moved, found := c.Grid().Find(1)
	require.True(t, found)
	assert.Equal(t, 3, slot)
	assert.Equal(t, day(1), moved.Date)
}

func TestDropOnOriginIsNoop(t *testing.T) {
	f := newFakePlanner(pancakes())
	c := loadedController(t, f)
	d := c.Drag()

	d.Begin(pancakes())
	d.HoverCell(Cell{Day: 0, Slot: 0})
	_, ok := d.Drop(c.Dates())

	assert.False(t, ok)
	assert.Equal(t, Resting, d.State())
	assert.Empty(t, f.calls)
}

func TestDropOutsideCellIsNoop(t *testing.T) {
	f := newFakePlanner(pancakes())
	c := loadedController(t, f)
	d := c.Drag()

	d.Begin(pancakes())
	d.Hover(2, 4, 3)
	d.Leave()
	_, ok := d.Drop(c.Dates())
	assert.False(t, ok)

	d.Begin(pancakes())
	d.HoverCell(Cell{Day: 7, Slot: 0})
	_, ok = d.Drop(c.Dates())
	assert.False(t, ok)

	assert.Equal(t, Resting, d.State())
	assert.Empty(t, f.calls)
}

func TestCancelDrag(t *testing.T) {
	var d Drag
	d.Begin(pancakes())
	d.HoverCell(Cell{Day: 3, Slot: 1})
	d.Cancel()

	assert.Equal(t, Resting, d.State())
	_, ok := d.Preview()
	assert.False(t, ok)
	_, ok = d.Meal()
	assert.False(t, ok)
}

func TestBeginIgnoredWhileRelocating(t *testing.T) {
	var d Drag
	d.Begin(pancakes())
	d.HoverCell(Cell{Day: 4, Slot: 2})
	_, ok := d.Drop(week.WeekDates(monday))
	require.True(t, ok)

	assert.False(t, d.Begin(plan.PlannedMeal{ID: 2}))
	d.Cancel()
	assert.Equal(t, Relocating, d.State())

	d.Settle()
	assert.Equal(t, Resting, d.State())
}

func TestFailedRelocateKeepsMeals(t *testing.T) {
	f := newFakePlanner(pancakes())
	c := loadedController(t, f)
	f.failOn, f.err = "update", errors.New("boom")

	d := c.Drag()
	d.Begin(pancakes())
	d.HoverCell(Cell{Day: 5, Slot: 1})
	m, ok := d.Drop(c.Dates())
	require.True(t, ok)

	_, err := c.Apply(context.Background(), m)
	require.Error(t, err)

	assert.Equal(t, []string{"update"}, f.ops())
	assert.Equal(t, Resting, d.State())
	assert.Equal(t, []plan.PlannedMeal{pancakes()}, c.Meals())
	n, ok := c.Notice()
	require.True(t, ok)
	assert.True(t, n.Err)
	assert.Contains(t, n.Text, "Could not move meal")
}

func TestValidationFailureSendsNothing(t *testing.T) {
	f := newFakePlanner()
	c := loadedController(t, f)

	_, err := c.Apply(context.Background(), Add(plan.MealInput{Date: day(0), MealType: plan.Lunch}))

	assert.ErrorIs(t, err, plan.ErrNoRecipe)
	assert.Empty(t, f.calls)
	n, _ := c.Notice()
	assert.Equal(t, "select a recipe first", n.Text)
}

func TestAddRefetches(t *testing.T) {
	f := newFakePlanner()
	c := loadedController(t, f)

	o, err := c.Apply(context.Background(), Add(plan.MealInput{Date: day(3), MealType: plan.Lunch, RecipeID: 4}))
	require.NoError(t, err)

	assert.Equal(t, int64(101), o.MealID)
	assert.Equal(t, []string{"add", "weekly"}, f.ops())
	assert.Len(t, c.Grid().Cell(3, 1), 1)
}

func TestDeleteRefetches(t *testing.T) {
	f := newFakePlanner(pancakes())
	c := loadedController(t, f)

	_, err := c.Apply(context.Background(), Delete(1))
	require.NoError(t, err)

	assert.Equal(t, []string{"delete", "weekly"}, f.ops())
	assert.Zero(t, c.Grid().Count())
}

func TestClearWeekDeclinedSendsNothing(t *testing.T) {
	f := newFakePlanner(pancakes())
	c := loadedController(t, f)

	var asked string
	_, cleared, err := c.ClearWeek(context.Background(), func(q string) (bool, error) {
		asked = q
		return false, nil
	})

	require.NoError(t, err)
	assert.False(t, cleared)
	assert.Equal(t, "Clear this entire week?", asked)
	assert.Empty(t, f.calls)
	assert.Equal(t, 1, c.Grid().Count())
}

func TestClearWeekConfirmed(t *testing.T) {
	f := newFakePlanner(pancakes(), plan.PlannedMeal{ID: 2, Date: day(4), MealType: plan.Snack, RecipeID: 3})
	c := loadedController(t, f)

	o, cleared, err := c.ClearWeek(context.Background(), func(string) (bool, error) { return true, nil })

	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Equal(t, 2, o.Deleted)
	assert.Equal(t, []string{"clear", "weekly"}, f.ops())
	assert.Equal(t, monday, f.calls[0].Week)
	assert.Zero(t, c.Grid().Count())
}

func TestClearWeekRefetchFailureStillCleared(t *testing.T) {
	f := newFakePlanner(pancakes())
	c := loadedController(t, f)
	f.failOn, f.err = "weekly", errors.New("gateway timeout")

	o, cleared, err := c.ClearWeek(context.Background(), func(string) (bool, error) { return true, nil })

	require.Error(t, err)
	assert.True(t, cleared)
	assert.Equal(t, 1, o.Deleted)
	assert.Equal(t, []string{"clear", "weekly"}, f.ops())
	n, ok := c.Notice()
	require.True(t, ok)
	assert.False(t, n.Err)
	assert.Equal(t, err, c.LoadErr())
}

func TestStaleFetchDiscarded(t *testing.T) {
	c := NewController(newFakePlanner(), monday)

	older := c.BeginFetch()
	newer := c.BeginFetch()

	assert.True(t, c.Complete(newer, []plan.PlannedMeal{pancakes()}, nil))
	assert.False(t, c.Complete(older, nil, errors.New("late failure")))

	assert.NoError(t, c.LoadErr())
	assert.Equal(t, 1, c.Grid().Count())
}

func TestRefreshMidDragKeepsGesture(t *testing.T) {
	f := newFakePlanner(pancakes())
	c := loadedController(t, f)
	d := c.Drag()
	d.Begin(pancakes())
	d.HoverCell(Cell{Day: 2, Slot: 2})

	f.meals = append(f.meals, plan.PlannedMeal{ID: 7, Date: day(6), MealType: plan.Dinner, RecipeID: 5})
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, Dragging, d.State())
	preview, ok := d.Preview()
	require.True(t, ok)
	assert.Equal(t, Cell{Day: 2, Slot: 2}, preview)
	assert.Equal(t, 2, c.Grid().Count())
}

func TestLoadErrorStandsUntilSuccess(t *testing.T) {
	f := newFakePlanner(pancakes())
	f.failOn, f.err = "weekly", errors.New("connection refused")
	c := NewController(f, monday)

	require.Error(t, c.Refresh(context.Background()))
	assert.EqualError(t, c.LoadErr(), "connection refused")
	assert.False(t, c.Loaded())

	f.failOn = ""
	require.NoError(t, c.Refresh(context.Background()))
	assert.NoError(t, c.LoadErr())
	assert.True(t, c.Loaded())
}

func TestNoticeDismissOnlyMatchingID(t *testing.T) {
	c := NewController(newFakePlanner(), monday)

	first := c.SetNotice("Meal removed", false)
	second := c.SetNotice("Could not add meal: boom", true)
	assert.Greater(t, second.ID, first.ID)

	assert.False(t, c.DismissNotice(first.ID))
	n, ok := c.Notice()
	require.True(t, ok)
	assert.Equal(t, second, n)

	assert.True(t, c.DismissNotice(second.ID))
	_, ok = c.Notice()
	assert.False(t, ok)
}

func TestWeekNavigation(t *testing.T) {
	today := day(16)
	c := NewController(newFakePlanner(), day(3), WithFloor(day(-5)), WithClock(func() time.Time { return today }))

	assert.Equal(t, monday, c.Week())

	changed, err := c.Prev()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, day(-7), c.Week())
	assert.False(t, c.CanPrev())

	_, err = c.Prev()
	assert.ErrorIs(t, err, ErrBeforeFloor)
	assert.Equal(t, day(-7), c.Week())

	_, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, monday, c.Week())

	_, err = c.Today()
	require.NoError(t, err)
	assert.Equal(t, day(14), c.Week())
}

func TestWeekChangeInvalidatesFetch(t *testing.T) {
	c := NewController(newFakePlanner(), monday)
	t1 := c.BeginFetch()

	_, err := c.Next()
	require.NoError(t, err)

	assert.False(t, c.Complete(t1, []plan.PlannedMeal{pancakes()}, nil))
	assert.Zero(t, c.Grid().Count())
	assert.False(t, c.Loaded())
}

func TestControllerClampsToFloor(t *testing.T) {
	c := NewController(newFakePlanner(), day(-30), WithFloor(monday))
	assert.Equal(t, monday, c.Week())
}
