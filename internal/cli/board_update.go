package cli

import (
	"fmt"

	"github.com/Untitled-ITU/nutrify-sub000/internal/board"
	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	tea "github.com/charmbracelet/bubbletea"
)

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Background results are applied whether or not an overlay is open
	switch msg := msg.(type) {
	case weekLoadedMsg:
		if m.ctrl.Complete(msg.ticket, msg.meals, msg.err) {
			m = m.clampCursor()
		}
		return m, nil
	case mutationDoneMsg:
		return m.handleMutationDone(msg)
	case noticeExpiredMsg:
		m.ctrl.DismissNotice(msg.id)
		return m, nil
	case recipesLoadedMsg:
		if picker, ok := m.overlay.(*recipePickerOverlay); ok {
			picker.setRecipes(msg.recipes, msg.err)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil
	}

	// If overlay is active, delegate to it
	if m.overlay != nil {
		return m.updateOverlay(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	drag := m.ctrl.Drag()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		drag.Cancel()
	case "left", "h":
		m = m.moveCursor(-1, 0)
	case "right", "l":
		m = m.moveCursor(1, 0)
	case "up", "k":
		m = m.moveCursor(0, -1)
	case "down", "j":
		m = m.moveCursor(0, 1)
	case "tab":
		if n := len(m.ctrl.Grid().Cell(m.cursor.Day, m.cursor.Slot)); n > 1 && drag.State() == board.Resting {
			m.cursorIdx = (m.cursorIdx + 1) % n
		}
	case " ":
		if meal, ok := m.selectedMeal(); ok && drag.Begin(meal) {
			drag.HoverCell(m.cursor)
		}
	case "enter":
		if drag.State() == board.Dragging {
			return m.drop()
		}
		return m.startEdit()
	case "a":
		return m.startAdd()
	case "e":
		return m.startEdit()
	case "d", "delete", "backspace":
		return m.startRemove()
	case "c":
		return m.startClear()
	case "[":
		return m.navigate(m.ctrl.Prev)
	case "]":
		return m.navigate(m.ctrl.Next)
	case "t":
		return m.navigate(m.ctrl.Today)
	case "r":
		return m, m.fetch()
	}
	return m, nil
}

// handleMouse maps pointer capture, motion and release onto the drag gesture.
func (m boardModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	l := m.layout()
	drag := m.ctrl.Drag()
	day, okX := l.dayAt(msg.X)
	offsetY, okY := l.offsetAt(msg.Y)
	inside := okX && okY

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside || drag.State() != board.Resting {
			return m, nil
		}
		slot := board.Bucket(offsetY, l.rowHeight)
		m.cursor = board.Cell{Day: day, Slot: slot}
		m.cursorIdx = 0
		meals := m.ctrl.Grid().Cell(day, slot)
		line := offsetY % l.rowHeight
		if line >= len(meals) || (len(meals) > l.rowHeight && line == l.rowHeight-1) {
			return m, nil
		}
		m.cursorIdx = line
		if drag.Begin(meals[line]) {
			drag.Hover(day, offsetY, l.rowHeight)
		}

	case tea.MouseActionMotion:
		if drag.State() != board.Dragging {
			return m, nil
		}
		if inside {
			drag.Hover(day, offsetY, l.rowHeight)
		} else {
			drag.Leave()
		}

	case tea.MouseActionRelease:
		if drag.State() != board.Dragging {
			return m, nil
		}
		if inside {
			drag.Hover(day, offsetY, l.rowHeight)
			m.cursor = board.Cell{Day: day, Slot: board.Bucket(offsetY, l.rowHeight)}
		} else {
			drag.Leave()
		}
		return m.drop()
	}
	return m, nil
}

// moveCursor moves the selection, carrying the drag preview along.
func (m boardModel) moveCursor(dx, dy int) boardModel {
	next := board.Cell{Day: m.cursor.Day + dx, Slot: m.cursor.Slot + dy}
	if !next.Valid() {
		return m
	}
	m.cursor = next
	m.cursorIdx = 0
	m.ctrl.Drag().HoverCell(next)
	return m
}

func (m boardModel) clampCursor() boardModel {
	n := len(m.ctrl.Grid().Cell(m.cursor.Day, m.cursor.Slot))
	if m.cursorIdx >= n {
		m.cursorIdx = 0
	}
	return m
}

func (m boardModel) drop() (tea.Model, tea.Cmd) {
	mut, ok := m.ctrl.Drag().Drop(m.ctrl.Dates())
	if !ok {
		return m, nil
	}
	return m, m.mutate(mut)
}

func (m boardModel) navigate(step func() (bool, error)) (tea.Model, tea.Cmd) {
	changed, err := step()
	if err != nil {
		return m, m.expire(m.ctrl.SetNotice(err.Error(), true))
	}
	if !changed {
		return m, nil
	}
	m.cursorIdx = 0
	return m, m.fetch()
}

func (m boardModel) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	refetch := m.ctrl.Finish(msg.mutation, msg.outcome, msg.err)
	n, _ := m.ctrl.Notice()
	cmds := []tea.Cmd{m.expire(n)}
	if refetch {
		cmds = append(cmds, m.fetch())
	}
	return m, tea.Batch(cmds...)
}

func (m boardModel) startAdd() (tea.Model, tea.Cmd) {
	if !m.ctrl.Loaded() || m.ctrl.LoadErr() != nil {
		return m, nil
	}
	date := m.ctrl.Dates()[m.cursor.Day]
	mt := plan.MealTypeAt(m.cursor.Slot)
	title := fmt.Sprintf("Add to %s · %s", date.Format("Mon Jan 2"), mt.Label())

	m.mode = modeAdding
	m.overlay = newRecipePickerOverlay(title, "add", 0)
	return m, m.loadRecipes()
}

func (m boardModel) startEdit() (tea.Model, tea.Cmd) {
	meal, ok := m.selectedMeal()
	if !ok || m.ctrl.Drag().Active() {
		return m, nil
	}
	m.mode = modeEditing
	m.target = meal
	m.overlay = newRecipePickerOverlay("Change recipe · "+describeMeal(meal), "edit", meal.RecipeID)
	return m, m.loadRecipes()
}

func (m boardModel) startRemove() (tea.Model, tea.Cmd) {
	meal, ok := m.selectedMeal()
	if !ok || m.ctrl.Drag().Active() {
		return m, nil
	}
	m.mode = modeRemoving
	m.target = meal
	m.overlay = newConfirmOverlay("Remove Meal", describeMeal(meal), "Remove this meal?", "remove")
	return m, nil
}

func (m boardModel) startClear() (tea.Model, tea.Cmd) {
	if !m.ctrl.Loaded() || m.ctrl.LoadErr() != nil || m.ctrl.Drag().Active() {
		return m, nil
	}
	m.mode = modeClearing
	detail := fmt.Sprintf("%s · %d meals", week.FormatRange(m.ctrl.Week()), m.ctrl.Grid().Count())
	m.overlay = newConfirmOverlay("Clear Week", detail, board.ClearPrompt, "clear")
	return m, nil
}

// updateOverlay delegates input to the active overlay and handles overlay results.
func (m boardModel) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(overlayResult); ok {
		return m.handleOverlayResult(result)
	}

	updated, cmd := m.overlay.Update(msg)
	m.overlay = updated
	return m, cmd
}

// handleOverlayResult turns a completed overlay into at most one mutation.
func (m boardModel) handleOverlayResult(result overlayResult) (tea.Model, tea.Cmd) {
	mode, target := m.mode, m.target
	m.overlay = nil
	m.mode = modeNormal
	m.target = plan.PlannedMeal{}

	if result.action == "cancel" {
		return m, nil
	}

	switch mode {
	case modeAdding:
		in := plan.MealInput{
			Date:     m.ctrl.Dates()[m.cursor.Day],
			MealType: plan.MealTypeAt(m.cursor.Slot),
			RecipeID: result.recipe.ID,
		}
		return m, m.mutate(board.Add(in))

	case modeEditing:
		in := target.Input()
		in.RecipeID = result.recipe.ID
		return m, m.mutate(board.Update(target.ID, in))

	case modeRemoving:
		return m, m.mutate(board.Delete(target.ID))

	case modeClearing:
		return m, m.mutate(board.ClearWeek(m.ctrl.Week()))
	}
	return m, nil
}
