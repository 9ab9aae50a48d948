package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/api"
	"github.com/Untitled-ITU/nutrify-sub000/internal/board"
	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	"github.com/charmbracelet/lipgloss"
)

const (
	labelColWidth  = 10
	minDayColWidth = 12
	maxDayColWidth = 24
	dayColPadding  = 3 // "│ " before and " " after the content
	gridTop        = 3 // title, day header, separator
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	dotStyle      = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	previewStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#2E7D32")).Foreground(lipgloss.Color("#FFFFFF"))
	draggedStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
)

const boardKeys = "←/→/↑/↓ move  |  space pick up  |  enter drop  |  esc cancel  |  a add  |  e edit  |  d remove  |  c clear  |  [/] week  |  t today  |  r refresh  |  q quit"

func (m boardModel) View() string {
	// If overlay is active, render it on top
	if m.overlay != nil {
		return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, m.overlay.View(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if err := m.ctrl.LoadErr(); err != nil {
		return renderLoadError(m.ctrl.Week(), err) + "\n" + footerStyle.Render("r retry  |  [/] week  |  t today  |  q quit") + "\n"
	}
	if !m.ctrl.Loaded() {
		return headerStyle.Render("Meal plan · "+week.FormatRange(m.ctrl.Week())) + "\n\n" + Silent("Loading…") + "\n"
	}

	v := boardView{
		grid:       m.ctrl.Grid(),
		layout:     m.layout(),
		today:      m.now(),
		showCursor: true,
		cursor:     m.cursor,
		cursorIdx:  m.cursorIdx,
		footer:     m.footer(),
	}
	drag := m.ctrl.Drag()
	if preview, ok := drag.Preview(); ok {
		v.preview = &preview
	}
	if meal, ok := drag.Meal(); ok {
		v.draggedID = meal.ID
	}
	v.relocating = drag.State() == board.Relocating
	return renderBoard(v)
}

func (m boardModel) footer() string {
	keys := footerStyle.Render(boardKeys)
	n, ok := m.ctrl.Notice()
	if !ok {
		return keys
	}
	if n.Err {
		return Error(n.Text) + "\n" + keys
	}
	return Info(n.Text) + "\n" + keys
}

// boardLayout holds the terminal geometry of the grid.
type boardLayout struct {
	dayWidth  int
	rowHeight int
}

func layoutFor(termWidth, rowHeight int) boardLayout {
	if rowHeight < 1 {
		rowHeight = 1
	}
	w := (termWidth-labelColWidth)/week.Days - dayColPadding
	if w < minDayColWidth {
		w = minDayColWidth
	}
	if w > maxDayColWidth {
		w = maxDayColWidth
	}
	return boardLayout{dayWidth: w, rowHeight: rowHeight}
}

// dayAt maps a terminal column to a day column.
func (l boardLayout) dayAt(x int) (int, bool) {
	rel := x - labelColWidth
	if rel < 0 {
		return 0, false
	}
	day := rel / (l.dayWidth + dayColPadding)
	return day, day < week.Days
}

// offsetAt maps a terminal row to a vertical offset inside the meal bands.
func (l boardLayout) offsetAt(y int) (int, bool) {
	off := y - gridTop
	return off, off >= 0 && off < plan.Slots*l.rowHeight
}

// boardView is everything needed to draw one frame of the board.
type boardView struct {
	grid       *plan.Grid
	layout     boardLayout
	today      time.Time
	showCursor bool
	cursor     board.Cell
	cursorIdx  int
	preview    *board.Cell
	draggedID  int64
	relocating bool
	footer     string
}

// renderBoard draws the title, the 7 × 4 grid and the footer.
func renderBoard(v boardView) string {
	var b strings.Builder
	l := v.layout

	title := fmt.Sprintf("Meal plan · %s", week.FormatRange(v.grid.Monday))
	if v.relocating {
		title += "  (moving…)"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(padRight("", labelColWidth))
	for _, date := range v.grid.Dates {
		label := fmt.Sprintf("%s %d", date.Format("Mon"), date.Day())
		b.WriteString("│ ")
		if !v.today.IsZero() && week.SameDay(date, v.today) {
			b.WriteString(todayStyle.Render(padRight(label+" •", l.dayWidth)))
		} else {
			b.WriteString(headerStyle.Render(padRight(label, l.dayWidth)))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")

	b.WriteString(separatorLine(l))

	for slot, mt := range plan.MealTypes {
		for line := 0; line < l.rowHeight; line++ {
			if line == 0 {
				b.WriteString(padRight(mt.Label(), labelColWidth))
			} else {
				b.WriteString(padRight("", labelColWidth))
			}
			for day := 0; day < week.Days; day++ {
				b.WriteString("│ ")
				b.WriteString(v.renderCellLine(day, slot, line))
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(separatorLine(l))

	if v.footer != "" {
		b.WriteString("\n")
		b.WriteString(v.footer)
		b.WriteString("\n")
	}
	return b.String()
}

// renderCellLine draws line of the (day, slot) cell. Stacked meals take one
// line each; overflow is summarized on the last line.
func (v boardView) renderCellLine(day, slot, line int) string {
	l := v.layout
	cell := board.Cell{Day: day, Slot: slot}
	meals := v.grid.Cell(day, slot)
	isCursor := v.showCursor && v.cursor == cell
	isPreview := v.preview != nil && *v.preview == cell

	text := ""
	var meal *plan.PlannedMeal
	switch {
	case len(meals) > l.rowHeight && line == l.rowHeight-1:
		text = fmt.Sprintf("+%d more", len(meals)-line)
	case line < len(meals):
		meal = &meals[line]
		text = fmt.Sprintf("#%d %s", meal.ID, mealTitle(*meal))
	case line == 0 && len(meals) == 0:
		text = "·"
	}
	padded := padRight(text, l.dayWidth)

	switch {
	case isPreview:
		return previewStyle.Render(padded)
	case meal != nil && meal.ID == v.draggedID:
		return draggedStyle.Render(padded)
	case isCursor && (len(meals) == 0 && line == 0 || meal != nil && line == v.cursorIdx):
		return selectedStyle.Render(padded)
	case meal == nil && text == "·":
		return dotStyle.Render(padded)
	}
	return padded
}

func separatorLine(l boardLayout) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("─", labelColWidth))
	for i := 0; i < week.Days; i++ {
		b.WriteString("┼")
		b.WriteString(strings.Repeat("─", l.dayWidth+dayColPadding-1))
	}
	b.WriteString("\n")
	return b.String()
}

// renderLoadError replaces the board while the week cannot be fetched.
func renderLoadError(monday time.Time, err error) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Meal plan · %s", week.FormatRange(monday))))
	b.WriteString("\n\n")
	if api.IsUnauthenticated(err) {
		b.WriteString(Error("Not signed in."))
		b.WriteString("\n")
		b.WriteString(Silent("Sign in to the web app and run 'nutrify config set token <token>'."))
	} else {
		b.WriteString(Error("Could not load the meal plan: " + err.Error()))
	}
	b.WriteString("\n")
	return b.String()
}

// padRight pads or truncates s to width terminal cells. Wide runes such as
// CJK characters and emoji take two cells.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w <= width {
		return s + strings.Repeat(" ", width-w)
	}
	if width <= 0 {
		return ""
	}

	limit := width - 1 // room for the ellipsis
	if width == 1 {
		limit = width
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if used+rw > limit {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	if width > 1 {
		b.WriteString("…")
		used++
	}
	b.WriteString(strings.Repeat(" ", width-used))
	return b.String()
}
