package cli

import (
	"testing"

	"github.com/Untitled-ITU/nutrify-sub000/internal/plan"
	"github.com/stretchr/testify/assert"
)

func TestColorHelpers(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) string
		input string
	}{
		{"Primary", Primary, "Pancakes"},
		{"Error", Error, "could not load"},
		{"Warning", Warning, "nothing to buy"},
		{"Info", Info, "+ 6 pcs"},
		{"Silent", Silent, "(empty)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.fn(tt.input)
			assert.NotEmpty(t, result)
			assert.Contains(t, result, tt.input)
		})
	}
}

func TestMealTypeLabel(t *testing.T) {
	for _, mt := range plan.MealTypes {
		assert.Contains(t, MealType(mt), mt.Label())
	}
}
