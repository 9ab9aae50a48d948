package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/Untitled-ITU/nutrify-sub000/internal/shopping"
)

type ingredientInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type shoppingItem struct {
	ID          int64           `json:"id"`
	Ingredient  *ingredientInfo `json:"ingredient"`
	Amount      *float64        `json:"amount"`
	Unit        string          `json:"unit"`
	IsPurchased bool            `json:"is_purchased"`
}

type shoppingListResponse struct {
	Items []shoppingItem `json:"items"`
}

type comparisonItem struct {
	ID       int64    `json:"id"`
	InFridge *float64 `json:"in_fridge"`
}

type compareResponse struct {
	Comparison []comparisonItem `json:"comparison"`
}

type recipesResponse struct {
	Recipes []recipeInfo `json:"recipes"`
}

// ShoppingList fetches the user's shopping list.
func (c *Client) ShoppingList(ctx context.Context) ([]shopping.ShoppingListLine, error) {
	var resp shoppingListResponse
	if err := c.do(ctx, http.MethodGet, "/shopping-list", nil, nil, &resp); err != nil {
		return nil, err
	}

	lines := make([]shopping.ShoppingListLine, 0, len(resp.Items))
	for _, item := range resp.Items {
		line := shopping.ShoppingListLine{
			ID:        item.ID,
			Unit:      item.Unit,
			Purchased: item.IsPurchased,
		}
		if item.Ingredient != nil {
			line.Name = item.Ingredient.Name
		}
		if item.Amount != nil {
			line.RequiredAmount = *item.Amount
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// CompareFridge fetches the fridge amount for each unpurchased shopping item.
// Items missing from the fridge report zero. The backend serves the route as
// POST; servers that only accept GET answer 405 and are asked again with GET.
func (c *Client) CompareFridge(ctx context.Context) ([]shopping.FridgeLine, error) {
	const path = "/shopping-list/compare-fridge"
	var resp compareResponse
	err := c.do(ctx, http.MethodPost, path, nil, nil, &resp)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusMethodNotAllowed {
		resp = compareResponse{}
		err = c.do(ctx, http.MethodGet, path, nil, nil, &resp)
	}
	if err != nil {
		return nil, err
	}

	lines := make([]shopping.FridgeLine, 0, len(resp.Comparison))
	for _, item := range resp.Comparison {
		line := shopping.FridgeLine{ID: item.ID}
		if item.InFridge != nil {
			line.AvailableAmount = *item.InFridge
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Recipes searches recipes by title for the add and edit pickers.
func (c *Client) Recipes(ctx context.Context, search string) ([]plan.Recipe, error) {
	var query url.Values
	if s := strings.TrimSpace(search); s != "" {
		query = url.Values{"q": {s}}
	}

	var resp recipesResponse
	if err := c.do(ctx, http.MethodGet, "/recipes", query, nil, &resp); err != nil {
		return nil, err
	}

	recipes := make([]plan.Recipe, 0, len(resp.Recipes))
	for _, r := range resp.Recipes {
		recipes = append(recipes, plan.Recipe{ID: r.ID, Title: r.Title})
	}
	return recipes, nil
}
