package cli

import (
	"context"
	"os"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/board"
	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var boardCmd = LeafCommand{
	Use:   "board",
	Short: "Open the interactive weekly meal-plan board",
	StrFlags: []StringFlag{
		{Name: "week", Short: "w", Usage: "any date in the week to show, or an ISO week number (default: this week)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		weekFlag, _ := cmd.Flags().GetString("week")

		return runBoard(cmd, a, weekFlag, time.Now)
	},
}.Build()

// boardMode represents the current interaction mode of the board.
type boardMode int

const (
	modeNormal boardMode = iota
	modeAdding
	modeEditing
	modeRemoving
	modeClearing
)

type weekLoadedMsg struct {
	ticket board.Ticket
	meals  []plan.PlannedMeal
	err    error
}

type mutationDoneMsg struct {
	mutation board.Mutation
	outcome  board.Outcome
	err      error
}

type noticeExpiredMsg struct{ id int }

type recipesLoadedMsg struct {
	recipes []plan.Recipe
	err     error
}

type boardModel struct {
	ctx        context.Context
	ctrl       *board.Controller
	api        backend
	now        func() time.Time
	tick       func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	rowHeight  int
	cursor     board.Cell
	cursorIdx  int // selected meal within a stacked cell
	termWidth  int
	termHeight int
	mode       boardMode
	overlay    tea.Model        // active overlay (nil in normal mode)
	target     plan.PlannedMeal // meal the overlay acts on
}

func newBoardModel(ctx context.Context, a *app, day time.Time, nowFn func() time.Time) boardModel {
	ctrl := a.controller(day, nowFn)
	m := boardModel{
		ctx:        ctx,
		ctrl:       ctrl,
		api:        a.api,
		now:        nowFn,
		tick:       tea.Tick,
		rowHeight:  a.rows,
		termWidth:  120,
		termHeight: 40,
	}
	if idx, ok := week.DayIndex(ctrl.Week(), nowFn()); ok {
		m.cursor.Day = idx
	}
	return m
}

func (m boardModel) Init() tea.Cmd {
	return m.fetch()
}

func (m boardModel) layout() boardLayout {
	return layoutFor(m.termWidth, m.rowHeight)
}

// fetch requests the displayed week. Only the newest fetch is applied.
func (m boardModel) fetch() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	ticket := ctrl.BeginFetch()
	return func() tea.Msg {
		meals, err := ctrl.Fetch(ctx, ticket)
		return weekLoadedMsg{ticket: ticket, meals: meals, err: err}
	}
}

// mutate validates mut and, if it passes, issues its single request.
func (m boardModel) mutate(mut board.Mutation) tea.Cmd {
	if err := mut.Validate(); err != nil {
		if mut.Kind == board.KindRelocate {
			m.ctrl.Drag().Settle()
		}
		return m.expire(m.ctrl.SetNotice(err.Error(), true))
	}
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		o, err := mut.Run(ctx, api)
		return mutationDoneMsg{mutation: mut, outcome: o, err: err}
	}
}

// expire schedules the auto-dismiss of notice n.
func (m boardModel) expire(n board.Notice) tea.Cmd {
	return m.tick(board.NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: n.ID}
	})
}

func (m boardModel) loadRecipes() tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		recipes, err := api.Recipes(ctx, "")
		return recipesLoadedMsg{recipes: recipes, err: err}
	}
}

// selectedMeal returns the meal under the cursor.
func (m boardModel) selectedMeal() (plan.PlannedMeal, bool) {
	if !m.ctrl.Loaded() || m.ctrl.LoadErr() != nil {
		return plan.PlannedMeal{}, false
	}
	meals := m.ctrl.Grid().Cell(m.cursor.Day, m.cursor.Slot)
	if len(meals) == 0 {
		return plan.PlannedMeal{}, false
	}
	idx := m.cursorIdx
	if idx >= len(meals) {
		idx = len(meals) - 1
	}
	return meals[idx], true
}

func runBoard(cmd *cobra.Command, a *app, weekFlag string, nowFn func() time.Time) error {
	day, err := resolveWeek(weekFlag, nowFn())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ctx := cmdContext(cmd)

	// Non-TTY fallback: print the static board
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return printWeek(cmd, a, day, nowFn)
	}

	m := newBoardModel(ctx, a, day, nowFn)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}
