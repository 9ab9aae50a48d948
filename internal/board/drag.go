package board

import (
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
)

// DragState is the phase of a relocation gesture.
type DragState int

const (
	Resting DragState = iota
	Dragging
	Relocating
)

func (s DragState) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Relocating:
		return "relocating"
	default:
		return "resting"
	}
}

// Cell addresses a day column and meal band of the board.
type Cell struct {
	Day  int
	Slot int
}

// Valid reports whether c lies inside the 7 × 4 grid.
func (c Cell) Valid() bool {
	return c.Day >= 0 && c.Day < week.Days && c.Slot >= 0 && c.Slot < plan.Slots
}

// Bucket maps a vertical offset inside a day column to a meal band,
// clamped to the first and last band.
func Bucket(offsetY, rowHeight int) int {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	slot := offsetY / rowHeight
	if offsetY < 0 {
		slot = 0
	}
	if slot >= plan.Slots {
		slot = plan.Slots - 1
	}
	return slot
}

// Drag tracks one pointer or keyboard relocation of a meal card.
// The zero value is resting.
type Drag struct {
	state      DragState
	meal       plan.PlannedMeal
	preview    Cell
	hasPreview bool
}

// State returns the current phase.
func (d *Drag) State() DragState { return d.state }

// Active reports whether a gesture is in progress or awaiting its request.
func (d *Drag) Active() bool { return d.state != Resting }

// Meal returns the captured meal while not resting.
func (d *Drag) Meal() (plan.PlannedMeal, bool) {
	if d.state == Resting {
		return plan.PlannedMeal{}, false
	}
	return d.meal, true
}

// Preview returns the highlighted drop target.
func (d *Drag) Preview() (Cell, bool) {
	return d.preview, d.hasPreview && d.state == Dragging
}

// Begin captures meal. Ignored unless resting.
func (d *Drag) Begin(meal plan.PlannedMeal) bool {
	if d.state != Resting {
		return false
	}
	d.state = Dragging
	d.meal = meal
	d.hasPreview = false
	return true
}

// Hover moves the preview to the band under offsetY in day's column.
func (d *Drag) Hover(day, offsetY, rowHeight int) {
	d.HoverCell(Cell{Day: day, Slot: Bucket(offsetY, rowHeight)})
}

// HoverCell moves the preview to c. Out-of-grid cells clear it.
func (d *Drag) HoverCell(c Cell) {
	if d.state != Dragging {
		return
	}
	if !c.Valid() {
		d.hasPreview = false
		return
	}
	d.preview = c
	d.hasPreview = true
}

// Leave clears the preview when the pointer is outside every cell.
func (d *Drag) Leave() {
	d.hasPreview = false
}

// Drop ends the gesture. Over a cell other than the meal's own it enters
// relocating and returns the relocate mutation; otherwise it rests and
// ok is false.
func (d *Drag) Drop(dates [week.Days]time.Time) (m Mutation, ok bool) {
	if d.state != Dragging {
		return Mutation{}, false
	}
	target, has := d.preview, d.hasPreview
	d.hasPreview = false

	if !has {
		d.reset()
		return Mutation{}, false
	}

	date := dates[target.Day]
	mealType := plan.MealTypeAt(target.Slot)
	if week.SameDay(date, d.meal.Date) && mealType == d.meal.MealType {
		d.reset()
		return Mutation{}, false
	}

	d.state = Relocating
	return Relocate(d.meal, date, mealType), true
}

// Cancel abandons the gesture without a request.
func (d *Drag) Cancel() {
	if d.state == Dragging {
		d.reset()
	}
}

// Settle returns to resting once the relocate request has resolved.
func (d *Drag) Settle() {
	if d.state == Relocating {
		d.reset()
	}
}

func (d *Drag) reset() {
	*d = Drag{}
}
