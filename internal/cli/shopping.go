package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Untitled-ITU/nutrify-sub000/internal/shopping"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var shoppingCmd = LeafCommand{
	Use:     "shopping",
	Aliases: []string{"shop"},
	Short:   "Show what to buy after checking the fridge",
	BoolFlags: []BoolFlag{
		{Name: "all", Short: "a", Usage: "include items already covered or purchased"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		allFlag, _ := cmd.Flags().GetBool("all")

		return runShopping(cmd, a, allFlag)
	},
}.Build()

func runShopping(cmd *cobra.Command, a *app, all bool) error {
	rows, err := loadDeficits(cmdContext(cmd), a, all)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, Silent("Nothing to buy."))
		return nil
	}

	nameWidth := len("Item")
	for _, r := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(r.Name))
	}
	nameWidth = min(nameWidth, 32)

	_, _ = fmt.Fprintf(w, "%s  %s\n", headerStyle.Render(padRight("Item", nameWidth)), headerStyle.Render("Buy"))
	for _, r := range rows {
		buy := shopping.FormatBuy(r.Deficit)
		if r.BuyAmount == 0 {
			buy = Silent("covered")
		} else {
			buy = Primary(buy)
		}
		if r.purchased {
			buy += " " + Silent("(purchased)")
		}
		_, _ = fmt.Fprintf(w, "%s  %s\n", padRight(ingredientName(r.Deficit), nameWidth), buy)
	}
	return nil
}

// deficitRow is a shopping deficit plus whether the line is already bought.
type deficitRow struct {
	shopping.Deficit
	purchased bool
}

// loadDeficits fetches the shopping list and fridge comparison and
// reconciles them. Purchased lines and covered rows are dropped unless all is set.
func loadDeficits(ctx context.Context, a *app, all bool) ([]deficitRow, error) {
	list, err := a.api.ShoppingList(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load the shopping list: %w", err)
	}
	fridge, err := a.api.CompareFridge(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not compare with the fridge: %w", err)
	}

	purchased := make(map[int64]bool, len(list))
	open := make([]shopping.ShoppingListLine, 0, len(list))
	for _, line := range list {
		purchased[line.ID] = line.Purchased
		if all || !line.Purchased {
			open = append(open, line)
		}
	}

	deficits := shopping.ComputeDeficits(open, fridge)
	if !all {
		deficits = shopping.Outstanding(deficits)
	}

	rows := make([]deficitRow, len(deficits))
	for i, d := range deficits {
		rows[i] = deficitRow{Deficit: d, purchased: purchased[d.ID]}
	}
	return rows, nil
}

func ingredientName(d shopping.Deficit) string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Item %d", d.ID)
}
