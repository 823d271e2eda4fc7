package entity

import (
	"time"

	"lnlfit/internal/errors"
)

// Validation errors for meal plan templates.
var (
	// ErrMacroSplitInvalid is returned when the macro percentages do not sum to 100 (± 1).
	ErrMacroSplitInvalid = errors.New("macro split percentages must sum to 100")
	// ErrCalorieRangeInvalid is returned when the calorie range is empty or inverted.
	ErrCalorieRangeInvalid = errors.New("calorie range minimum must be below maximum")
	// ErrMealsPerDayInvalid is returned when the meal count is not positive.
	ErrMealsPerDayInvalid = errors.New("meals per day must be at least 1")
)

// CalorieRange is the daily calorie window a template targets.
type CalorieRange struct {
	Min int `json:"min" firestore:"min"`
	Max int `json:"max" firestore:"max"`
}

// Midpoint returns the rounded center of the range.
func (r CalorieRange) Midpoint() int {
	return (r.Min + r.Max) / 2
}

// MacroSplit is the protein/carbs/fat percentage breakdown of a template.
type MacroSplit struct {
	Protein int `json:"protein" firestore:"protein"`
	Carbs   int `json:"carbs" firestore:"carbs"`
	Fat     int `json:"fat" firestore:"fat"`
}

// MealPlanTemplate is an admin-authored scoring target for the template
// selector. Read-only to the fulfillment pipeline.
type MealPlanTemplate struct {
	ID           string       `json:"id" firestore:"-"`
	Name         string       `json:"name" firestore:"name"`
	CustomerType string       `json:"customerType" firestore:"customerType"` // Type tag, e.g. "weight-loss-busy" or "vegan".
	CalorieRange CalorieRange `json:"calorieRange" firestore:"calorieRange"`
	MacroSplit   MacroSplit   `json:"macroSplit" firestore:"macroSplit"`
	MealsPerDay  int          `json:"mealsPerDay" firestore:"mealsPerDay"`
	Guidelines   string       `json:"guidelines,omitempty" firestore:"guidelines"`
	SampleMeals  string       `json:"sampleMeals,omitempty" firestore:"sampleMeals"`
	IsActive     bool         `json:"isActive" firestore:"isActive"`
	CreatedAt    time.Time    `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt" firestore:"updatedAt"`
}

// Validate checks template invariants before create or update.
// The macro split tolerates a ±1 rounding slack around 100.
func (t *MealPlanTemplate) Validate() error {
	sum := t.MacroSplit.Protein + t.MacroSplit.Carbs + t.MacroSplit.Fat
	if sum < 99 || sum > 101 {
		return ErrMacroSplitInvalid
	}
	if t.CalorieRange.Min <= 0 || t.CalorieRange.Min >= t.CalorieRange.Max {
		return ErrCalorieRangeInvalid
	}
	if t.MealsPerDay < 1 {
		return ErrMealsPerDayInvalid
	}

	return nil
}
