package plan

import (
	"sort"
	"time"

	"github.com/Untitled-ITU/nutrify-sub000/internal/week"
)

// Grid lays a week's meals out in day × slot cells.
// Several meals may share a cell; they are stacked in id order.
type Grid struct {
	Monday time.Time
	Dates  [week.Days]time.Time
	cells  [week.Days][Slots][]PlannedMeal
}

// NewGrid places meals into the window starting at monday.
// Meals outside the window or with an unknown meal type are skipped.
func NewGrid(monday time.Time, meals []PlannedMeal) *Grid {
	monday = week.StartOfWeek(monday)
	g := &Grid{Monday: monday, Dates: week.WeekDates(monday)}

	for _, m := range meals {
		day, ok := week.DayIndex(monday, m.Date)
		if !ok {
			continue
		}
		slot := m.MealType.Index()
		if slot < 0 {
			continue
		}
		g.cells[day][slot] = append(g.cells[day][slot], m)
	}

	for d := range g.cells {
		for s := range g.cells[d] {
			cell := g.cells[d][s]
			sort.SliceStable(cell, func(i, j int) bool { return cell[i].ID < cell[j].ID })
		}
	}
	return g
}

// Cell returns the meals in a cell. Out-of-range coordinates yield nil.
func (g *Grid) Cell(day, slot int) []PlannedMeal {
	if day < 0 || day >= week.Days || slot < 0 || slot >= Slots {
		return nil
	}
	return g.cells[day][slot]
}

// Find locates a meal by id.
func (g *Grid) Find(id int64) (day, slot int, meal PlannedMeal, ok bool) {
	for d := range g.cells {
		for s := range g.cells[d] {
			for _, m := range g.cells[d][s] {
				if m.ID == id {
					return d, s, m, true
				}
			}
		}
	}
	return -1, -1, PlannedMeal{}, false
}

// Count returns the number of meals placed in the window.
func (g *Grid) Count() int {
	n := 0
	for d := range g.cells {
		for s := range g.cells[d] {
			n += len(g.cells[d][s])
		}
	}
	return n
}
