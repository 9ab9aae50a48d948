package shopping

import (
	"strconv"
	"strings"
)

// ShoppingListLine is one item of the backend's shopping list.
type ShoppingListLine struct {
	ID             int64
	Name           string
	RequiredAmount float64
	Unit           string
	Purchased      bool
}

// FridgeLine is the on-hand amount the backend reports for a shopping item.
// ID is the shopping item id echoed by the compare-fridge endpoint.
type FridgeLine struct {
	ID              int64
	AvailableAmount float64
}

// Deficit is how much of a shopping line still has to be bought.
type Deficit struct {
	ID        int64
	Name      string
	BuyAmount float64
	Unit      string
}

// ComputeDeficits reconciles a shopping list against fridge inventory.
// The result has one row per list line, in list order, zero rows included.
// A line without a matching fridge entry has nothing available.
func ComputeDeficits(list []ShoppingListLine, fridge []FridgeLine) []Deficit {
	available := make(map[int64]float64, len(fridge))
	for _, f := range fridge {
		available[f.ID] = f.AvailableAmount
	}

	out := make([]Deficit, len(list))
	for i, line := range list {
		buy := line.RequiredAmount - available[line.ID]
		if buy < 0 {
			buy = 0
		}
		out[i] = Deficit{
			ID:        line.ID,
			Name:      line.Name,
			BuyAmount: buy,
			Unit:      line.Unit,
		}
	}
	return out
}

// Outstanding drops rows with nothing left to buy.
func Outstanding(deficits []Deficit) []Deficit {
	out := make([]Deficit, 0, len(deficits))
	for _, d := range deficits {
		if d.BuyAmount > 0 {
			out = append(out, d)
		}
	}
	return out
}

// FormatBuy renders a deficit as "+ 6 pcs".
func FormatBuy(d Deficit) string {
	s := "+ " + FormatAmount(d.BuyAmount)
	if d.Unit != "" {
		s += " " + d.Unit
	}
	return s
}

// FormatAmount prints at most two decimals without trailing zeros.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
