package board

import (
	"context"
	"errors"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
)

// NoticeTTL is how long a transient notice stays on screen.
const NoticeTTL = 1600 * time.Millisecond

// ClearPrompt is the question asked before a week is cleared.
const ClearPrompt = "Clear this entire week?"

// ErrBeforeFloor is returned when navigating before the configured floor week.
var ErrBeforeFloor = errors.New("earlier weeks are not available")

// Ticket identifies one week fetch. Only the newest ticket may apply.
type Ticket struct {
	seq    uint64
	Monday time.Time
}

// Notice is a transient message. ID grows with every notice so a dismiss
// timer only clears the notice it was started for.
type Notice struct {
	ID   int
	Text string
	Err  bool
}

// Controller holds the board state for the displayed week.
// It is not safe for concurrent use; requests run outside of it.
type Controller struct {
	api    Planner
	monday time.Time
	floor  time.Time
	now    func() time.Time

	meals   []plan.PlannedMeal
	grid    *plan.Grid
	loaded  bool
	loadErr error
	seq     uint64

	drag Drag

	notice    Notice
	hasNotice bool
	noticeSeq int
}

// Option configures a Controller.
type Option func(*Controller)

// WithFloor refuses navigation before the week containing floor.
func WithFloor(floor time.Time) Option {
	return func(c *Controller) {
		if !floor.IsZero() {
			c.floor = week.StartOfWeek(floor)
		}
	}
}

// WithClock sets the clock used by Today.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController shows the week containing day.
func NewController(api Planner, day time.Time, opts ...Option) *Controller {
	c := &Controller{api: api, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.monday = week.Clamp(week.StartOfWeek(day), c.floor)
	c.grid = plan.NewGrid(c.monday, nil)
	return c
}

// Week returns the Monday of the displayed week.
func (c *Controller) Week() time.Time { return c.monday }

// Dates returns the displayed days.
func (c *Controller) Dates() [week.Days]time.Time { return week.WeekDates(c.monday) }

// Meals returns the last fetched meals.
func (c *Controller) Meals() []plan.PlannedMeal { return c.meals }

// Grid returns the meals laid out by cell.
func (c *Controller) Grid() *plan.Grid { return c.grid }

// Loaded reports whether a fetch for the displayed week has succeeded.
func (c *Controller) Loaded() bool { return c.loaded }

// LoadErr is the standing fetch error, cleared by the next successful fetch.
func (c *Controller) LoadErr() error { return c.loadErr }

// Drag exposes the relocation gesture.
func (c *Controller) Drag() *Drag { return &c.drag }

// BeginFetch issues a ticket for the displayed week and invalidates older ones.
func (c *Controller) BeginFetch() Ticket {
	c.seq++
	return Ticket{seq: c.seq, Monday: c.monday}
}

// Fetch runs the request for t. It touches no controller state.
func (c *Controller) Fetch(ctx context.Context, t Ticket) ([]plan.PlannedMeal, error) {
	return c.api.Weekly(ctx, t.Monday)
}

// Complete applies a fetch result. Results for stale tickets are discarded
// and false is returned. The drag gesture is never touched.
func (c *Controller) Complete(t Ticket, meals []plan.PlannedMeal, err error) bool {
	if t.seq != c.seq {
		return false
	}
	if err != nil {
		c.loadErr = err
		return true
	}
	c.meals = meals
	c.grid = plan.NewGrid(c.monday, meals)
	c.loaded = true
	c.loadErr = nil
	return true
}

// Refresh fetches the displayed week synchronously.
func (c *Controller) Refresh(ctx context.Context) error {
	t := c.BeginFetch()
	meals, err := c.Fetch(ctx, t)
	c.Complete(t, meals, err)
	return err
}

// Finish records the result of m. On failure the meals stay as they were
// and an error notice is set. On success it reports that a refetch is due.
func (c *Controller) Finish(m Mutation, o Outcome, err error) (refetch bool) {
	if m.Kind == KindRelocate {
		c.drag.Settle()
	}
	if err != nil {
		c.SetNotice(m.Failure(err), true)
		return false
	}
	c.SetNotice(m.Success(o), false)
	return true
}

// Apply runs m, records the result and refetches on success.
func (c *Controller) Apply(ctx context.Context, m Mutation) (Outcome, error) {
	if err := m.Validate(); err != nil {
		c.SetNotice(err.Error(), true)
		if m.Kind == KindRelocate {
			c.drag.Settle()
		}
		return Outcome{}, err
	}

	o, err := m.Run(ctx, c.api)
	if !c.Finish(m, o, err) {
		return o, err
	}
	return o, c.Refresh(ctx)
}

// ClearWeek asks confirm before clearing the displayed week.
// A declined prompt sends nothing and reports cleared=false. Once the
// server has cleared the week, cleared stays true even if the refetch
// fails; err then carries the refetch error.
func (c *Controller) ClearWeek(ctx context.Context, confirm func(string) (bool, error)) (o Outcome, cleared bool, err error) {
	ok, err := confirm(ClearPrompt)
	if err != nil || !ok {
		return Outcome{}, false, err
	}
	m := ClearWeek(c.monday)
	o, err = m.Run(ctx, c.api)
	if !c.Finish(m, o, err) {
		return o, false, err
	}
	return o, true, c.Refresh(ctx)
}

// SetNotice replaces the current notice.
func (c *Controller) SetNotice(text string, isErr bool) Notice {
	c.noticeSeq++
	c.notice = Notice{ID: c.noticeSeq, Text: text, Err: isErr}
	c.hasNotice = true
	return c.notice
}

// Notice returns the current notice, if any.
func (c *Controller) Notice() (Notice, bool) { return c.notice, c.hasNotice }

// DismissNotice clears the notice only if it is still the one with id.
func (c *Controller) DismissNotice(id int) bool {
	if !c.hasNotice || c.notice.ID != id {
		return false
	}
	c.hasNotice = false
	c.notice = Notice{}
	return true
}

// SetWeek switches to the week containing day. The previous week's meals
// are dropped and pending fetches are invalidated. Reports whether the
// week changed.
func (c *Controller) SetWeek(day time.Time) (bool, error) {
	monday := week.StartOfWeek(day)
	if !c.floor.IsZero() && monday.Before(c.floor) {
		return false, ErrBeforeFloor
	}
	if monday.Equal(c.monday) {
		return false, nil
	}
	c.monday = monday
	c.meals = nil
	c.grid = plan.NewGrid(monday, nil)
	c.loaded = false
	c.loadErr = nil
	c.seq++
	c.drag.Cancel()
	return true, nil
}

// Prev shows the previous week.
func (c *Controller) Prev() (bool, error) { return c.SetWeek(week.Shift(c.monday, -1)) }

// Next shows the following week.
func (c *Controller) Next() (bool, error) { return c.SetWeek(week.Shift(c.monday, 1)) }

// Today shows the current week.
func (c *Controller) Today() (bool, error) {
	return c.SetWeek(week.Clamp(week.StartOfWeek(c.now()), c.floor))
}

// CanPrev reports whether the previous week is reachable.
func (c *Controller) CanPrev() bool {
	return c.floor.IsZero() || week.Shift(c.monday, -1).Compare(c.floor) >= 0
}
