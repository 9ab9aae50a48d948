package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MealType is one of the four vertical bands of a day column.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Snack     MealType = "snack"
	Dinner    MealType = "dinner"
)

// MealTypes lists the slots in board order, top to bottom.
var MealTypes = []MealType{Breakfast, Lunch, Snack, Dinner}

// Slots is the number of meal bands per day.
const Slots = 4

// ParseMealType parses a case-insensitive meal type name.
func ParseMealType(s string) (MealType, error) {
	mt := MealType(strings.ToLower(strings.TrimSpace(s)))
	if mt.Index() < 0 {
		return "", fmt.Errorf("invalid meal type %q (expected breakfast, lunch, snack or dinner)", s)
	}
	return mt, nil
}

// Index returns the slot row of the meal type, or -1 if unknown.
func (m MealType) Index() int {
	for i, mt := range MealTypes {
		if mt == m {
			return i
		}
	}
	return -1
}

// Label is the capitalized display name.
func (m MealType) Label() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// MealTypeAt maps a slot row to its meal type, clamping out-of-range rows.
func MealTypeAt(slot int) MealType {
	if slot < 0 {
		slot = 0
	}
	if slot >= Slots {
		slot = Slots - 1
	}
	return MealTypes[slot]
}

// PlannedMeal is a recipe scheduled into one (date, meal type) cell.
type PlannedMeal struct {
	ID          int64
	Date        time.Time
	MealType    MealType
	RecipeID    int64
	RecipeTitle string
}

// MealInput is the body of an add or update request.
type MealInput struct {
	Date     time.Time
	MealType MealType
	RecipeID int64
}

// ErrNoRecipe is returned when a meal is submitted without a recipe selection.
var ErrNoRecipe = errors.New("select a recipe first")

// Validate rejects inputs that must never reach the backend.
func (in MealInput) Validate() error {
	if in.RecipeID <= 0 {
		return ErrNoRecipe
	}
	if in.Date.IsZero() {
		return errors.New("plan date is required")
	}
	if in.MealType.Index() < 0 {
		return fmt.Errorf("invalid meal type %q", in.MealType)
	}
	return nil
}

// Input returns the request body that keeps the meal where it is.
func (m PlannedMeal) Input() MealInput {
	return MealInput{Date: m.Date, MealType: m.MealType, RecipeID: m.RecipeID}
}

// Recipe is a pickable recipe for the add and edit flows.
type Recipe struct {
	ID    int64
	Title string
}
