package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveConfirmed(t *testing.T) {
	f := newFakeBackend(pancakes(), soup())
	cmd, out := newTestCmd(t)
	var asked []string

	err := runRemove(cmd, testApp(f), "1", "", mockConfirm(true, &asked), fixedNow)

	require.NoError(t, err)
	assert.Equal(t, []string{"Remove this meal?"}, asked)
	assert.Equal(t, []string{"weekly", "delete", "weekly"}, f.ops())
	assert.Contains(t, out.String(), "Pancakes")
	assert.Contains(t, out.String(), "Meal removed")

	_, ok := f.meal(1)
	assert.False(t, ok)
}

func TestRemoveDeclined(t *testing.T) {
	f := newFakeBackend(pancakes())
	cmd, out := newTestCmd(t)

	err := runRemove(cmd, testApp(f), "1", "", mockConfirm(false, nil), fixedNow)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "cancelled")
	assert.Equal(t, []string{"weekly"}, f.ops())
	_, ok := f.meal(1)
	assert.True(t, ok)
}

func TestRemoveUsesWeekFlag(t *testing.T) {
	next := pancakes()
	next.Date = testDay(9)
	f := newFakeBackend(next)
	cmd, _ := newTestCmd(t)

	err := runRemove(cmd, testApp(f), "1", "24", AlwaysYes(), fixedNow)

	require.NoError(t, err)
	_, ok := f.meal(1)
	assert.False(t, ok)
}

func TestRemoveUnknownMeal(t *testing.T) {
	f := newFakeBackend(pancakes())
	cmd, _ := newTestCmd(t)

	err := runRemove(cmd, testApp(f), "5", "", AlwaysYes(), fixedNow)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "meal 5 is not planned")
	assert.Equal(t, []string{"weekly"}, f.ops())
}
