package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/shopping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderExportPDF_CreatesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "plan.pdf")

	data := exportData{
		Grid:      plan.NewGrid(testDay(0), []plan.PlannedMeal{pancakes(), soup()}),
		Deficits:  []shopping.Deficit{{ID: 1, Name: "Eggs", BuyAmount: 6, Unit: "pcs"}},
		Generated: testNow,
	}

	require.NoError(t, renderExportPDF(data, outPath))

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestRenderExportPDF_EmptyWeek(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "empty.pdf")

	data := exportData{Grid: plan.NewGrid(testDay(0), nil), Generated: testNow}

	require.NoError(t, renderExportPDF(data, outPath))
	_, err := os.Stat(outPath)
	assert.NoError(t, err)
}

func TestExportWritesWeekAndShoppingList(t *testing.T) {
	f := shoppingBackend()
	f.meals = []plan.PlannedMeal{pancakes()}
	cmd, out := newTestCmd(t)
	outPath := filepath.Join(t.TempDir(), "week.pdf")

	err := runExport(cmd, testApp(f), "", outPath, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, []string{"weekly", "shopping-list", "compare-fridge"}, f.ops())
	assert.Contains(t, out.String(), outPath)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestExportDefaultFileName(t *testing.T) {
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	f := newFakeBackend()
	cmd, _ := newTestCmd(t)

	require.NoError(t, runExport(cmd, testApp(f), "", "", fixedNow))

	_, err := os.Stat("meal-plan-2025-06-02.pdf")
	assert.NoError(t, err)
}
