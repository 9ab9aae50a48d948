package cli

import (
	"fmt"
	"strings"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// overlayResult is sent when an overlay completes.
type overlayResult struct {
	action string // "cancel", "add", "edit", "remove", "clear"
	recipe plan.Recipe
}

func overlayResultMsg(action string, recipe plan.Recipe) tea.Cmd {
	return func() tea.Msg {
		return overlayResult{action: action, recipe: recipe}
	}
}

var (
	overlayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(54)
	overlayTitleStyle  = lipgloss.NewStyle().Bold(true)
	overlayActiveStyle = lipgloss.NewStyle().Reverse(true)
	overlayMutedStyle  = lipgloss.NewStyle().Faint(true)
)

const pickerVisible = 8

// --- Recipe Picker Overlay ---
// Filterable recipe list for adding a meal or changing a meal's recipe.

type recipePickerOverlay struct {
	title    string
	action   string // "add" or "edit"
	recipes  []plan.Recipe
	filter   string
	cursor   int
	loading  bool
	loadErr  string
	err      string
	selected int64
}

func newRecipePickerOverlay(title, action string, current int64) *recipePickerOverlay {
	return &recipePickerOverlay{title: title, action: action, loading: true, selected: current}
}

func (o *recipePickerOverlay) Init() tea.Cmd { return nil }

// setRecipes fills the list once the recipe search returns.
func (o *recipePickerOverlay) setRecipes(recipes []plan.Recipe, err error) {
	o.loading = false
	if err != nil {
		o.loadErr = err.Error()
		return
	}
	o.recipes = recipes
	o.cursor = 0
	for i, r := range o.filtered() {
		if r.ID == o.selected {
			o.cursor = i
			break
		}
	}
}

func (o *recipePickerOverlay) filtered() []plan.Recipe {
	if o.filter == "" {
		return o.recipes
	}
	needle := strings.ToLower(o.filter)
	var out []plan.Recipe
	for _, r := range o.recipes {
		if strings.Contains(strings.ToLower(r.Title), needle) {
			out = append(out, r)
		}
	}
	return out
}

func (o *recipePickerOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return o, overlayResultMsg("cancel", plan.Recipe{})
		case "up":
			if o.cursor > 0 {
				o.cursor--
			}
		case "down":
			if o.cursor < len(o.filtered())-1 {
				o.cursor++
			}
		case "enter":
			list := o.filtered()
			if len(list) == 0 || o.cursor >= len(list) {
				o.err = plan.ErrNoRecipe.Error()
				return o, nil
			}
			o.err = ""
			return o, overlayResultMsg(o.action, list[o.cursor])
		case "backspace":
			if r := []rune(o.filter); len(r) > 0 {
				o.filter = string(r[:len(r)-1])
				o.cursor = 0
			}
		default:
			switch msg.Type {
			case tea.KeySpace:
				o.filter += " "
				o.cursor = 0
			case tea.KeyRunes:
				o.filter += string(msg.Runes)
				o.cursor = 0
			}
		}
	}
	return o, nil
}

func (o *recipePickerOverlay) View() string {
	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Search: %s_", o.filter))
	b.WriteString("\n\n")

	list := o.filtered()
	switch {
	case o.loading:
		b.WriteString(overlayMutedStyle.Render("  loading recipes…"))
		b.WriteString("\n")
	case o.loadErr != "":
		b.WriteString(Error("  " + o.loadErr))
		b.WriteString("\n")
	case len(list) == 0:
		b.WriteString(overlayMutedStyle.Render("  no matching recipes"))
		b.WriteString("\n")
	default:
		start := 0
		if o.cursor >= pickerVisible {
			start = o.cursor - pickerVisible + 1
		}
		end := start + pickerVisible
		if end > len(list) {
			end = len(list)
		}
		for i := start; i < end; i++ {
			label := list[i].Title
			if i == o.cursor {
				b.WriteString(overlayActiveStyle.Render("> " + label))
			} else {
				b.WriteString("  " + label)
			}
			b.WriteString("\n")
		}
	}

	if o.err != "" {
		b.WriteString("\n")
		b.WriteString(Error(o.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(overlayMutedStyle.Render("type to filter  |  ↑/↓ select  |  enter confirm  |  esc cancel"))

	return overlayBoxStyle.Render(b.String())
}

// --- Confirm Overlay ---
// Yes/no gate for removing a meal or clearing the week.

type confirmOverlay struct {
	title    string
	detail   string
	question string
	action   string
	cursor   int // 0 = yes, 1 = no
}

func newConfirmOverlay(title, detail, question, action string) *confirmOverlay {
	return &confirmOverlay{title: title, detail: detail, question: question, action: action, cursor: 1}
}

func (o *confirmOverlay) Init() tea.Cmd { return nil }

func (o *confirmOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "n":
			return o, overlayResultMsg("cancel", plan.Recipe{})
		case "left", "h", "right", "l", "tab":
			o.cursor = 1 - o.cursor
		case "enter":
			if o.cursor == 0 {
				return o, overlayResultMsg(o.action, plan.Recipe{})
			}
			return o, overlayResultMsg("cancel", plan.Recipe{})
		case "y":
			return o, overlayResultMsg(o.action, plan.Recipe{})
		}
	}
	return o, nil
}

func (o *confirmOverlay) View() string {
	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")

	if o.detail != "" {
		b.WriteString("  " + o.detail)
		b.WriteString("\n\n")
	}
	b.WriteString("  " + o.question + "\n\n")

	yes := "  [Yes]"
	no := "  [No]"
	if o.cursor == 0 {
		yes = overlayActiveStyle.Render("> [Yes]")
	}
	if o.cursor == 1 {
		no = overlayActiveStyle.Render("> [No]")
	}
	b.WriteString(yes + "    " + no)
	b.WriteString("\n\n")
	b.WriteString(overlayMutedStyle.Render("←/→ select  |  enter confirm  |  esc cancel"))

	return overlayBoxStyle.Render(b.String())
}
