package cli

import (
	"errors"
	"testing"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveRelocatesMeal(t *testing.T) {
	f := newFakeBackend(pancakes())
	cmd, out := newTestCmd(t)

	err := runMove(cmd, testApp(f), "1", "2025-06-05", "lunch", "", fixedNow)

	require.NoError(t, err)
	assert.Equal(t, []string{"weekly", "update", "weekly"}, f.ops())
	assert.Contains(t, out.String(), "Moved to Thu Jun 5 lunch")

	m, _ := f.meal(1)
	assert.Equal(t, testDay(3), m.Date)
	assert.Equal(t, plan.Lunch, m.MealType)
	assert.Equal(t, int64(10), m.RecipeID)
}

func TestMoveKeepsUnspecifiedCoordinate(t *testing.T) {
	f := newFakeBackend(pancakes())
	cmd, _ := newTestCmd(t)

	require.NoError(t, runMove(cmd, testApp(f), "1", "", "dinner", "", fixedNow))

	m, _ := f.meal(1)
	assert.Equal(t, testDay(2), m.Date)
	assert.Equal(t, plan.Dinner, m.MealType)
}

func TestMoveToSameCellSendsNothing(t *testing.T) {
	f := newFakeBackend(pancakes())
	cmd, out := newTestCmd(t)

	err := runMove(cmd, testApp(f), "1", "2025-06-04", "breakfast", "", fixedNow)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "already planned there")
	assert.Equal(t, []string{"weekly"}, f.ops())
}

func TestMoveRequiresTarget(t *testing.T) {
	f := newFakeBackend(pancakes())
	cmd, _ := newTestCmd(t)

	assert.Error(t, runMove(cmd, testApp(f), "1", "", "", "", fixedNow))
	assert.Error(t, runMove(cmd, testApp(f), "1", "", "brunch", "", fixedNow))
	assert.Empty(t, f.ops())
}

func TestMoveFailureLeavesMeal(t *testing.T) {
	f := newFakeBackend(pancakes())
	f.errs["update"] = errors.New("conflict")
	cmd, _ := newTestCmd(t)

	err := runMove(cmd, testApp(f), "1", "2025-06-06", "", "", fixedNow)

	require.Error(t, err)
	assert.Equal(t, "Could not move meal: conflict", err.Error())
	assert.Equal(t, []string{"weekly", "update"}, f.ops())
	m, _ := f.meal(1)
	assert.Equal(t, testDay(2), m.Date)
}
