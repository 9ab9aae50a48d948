package cli

import (
	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB300"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFCF"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }

var mealTypeColors = map[plan.MealType]lipgloss.Color{
	plan.Breakfast: lipgloss.Color("#FFB74D"),
	plan.Lunch:     lipgloss.Color("#81C784"),
	plan.Snack:     lipgloss.Color("#BA68C8"),
	plan.Dinner:    lipgloss.Color("#64B5F6"),
}

// MealType renders a meal type label in its band color.
func MealType(mt plan.MealType) string {
	return lipgloss.NewStyle().Foreground(mealTypeColors[mt]).Render(mt.Label())
}
