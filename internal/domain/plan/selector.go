// Package plan contains the pure business logic of meal plan generation:
// template selection, prompt context construction and generator output parsing.
package plan

import (
	"sort"
	"strings"

	"lnlfit/internal/domain/entity"
)

// Activity levels that override the calorie midpoint.
const (
	ActivitySedentary  = "sedentary"
	ActivityVeryActive = "very-active"
	ActivityAthlete    = "athlete"
)

// DefaultTemplate is the hard-coded fallback used when no active template exists.
func DefaultTemplate() *entity.MealPlanTemplate {
	return &entity.MealPlanTemplate{
		Name:         "General Balanced Plan",
		CustomerType: "general",
		CalorieRange: entity.CalorieRange{Min: 1800, Max: 2200},
		MacroSplit:   entity.MacroSplit{Protein: 30, Carbs: 40, Fat: 30},
		MealsPerDay:  3,
		Guidelines:   "Focus on whole foods, lean proteins, and plenty of vegetables.",
	}
}

// SelectTemplate picks the best-fit template for a customer profile using
// additive point scoring. Selection is deterministic: candidates are ordered
// by document ID before scoring and only a strictly higher score displaces
// the current winner, so ties resolve to the lowest template ID.
// An empty candidate set falls back to DefaultTemplate.
func SelectTemplate(profile *entity.CustomerProfile, templates []*entity.MealPlanTemplate) *entity.MealPlanTemplate {
	if len(templates) == 0 {
		return DefaultTemplate()
	}

	candidates := make([]*entity.MealPlanTemplate, len(templates))
	copy(candidates, templates)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	bestScore := -1
	var selected *entity.MealPlanTemplate
	for _, candidate := range candidates {
		if score := scoreTemplate(profile, candidate); score > bestScore {
			bestScore = score
			selected = candidate
		}
	}

	if selected == nil {
		return DefaultTemplate()
	}

	return selected
}

// scoreTemplate awards points for goal, lifestyle and dietary matches between
// the extracted profile and the template's type tag.
func scoreTemplate(profile *entity.CustomerProfile, template *entity.MealPlanTemplate) int {
	if profile == nil {
		profile = &entity.CustomerProfile{}
	}

	goal := strings.ToLower(profile.PrimaryGoal)
	typeTag := strings.ToLower(template.CustomerType)

	score := 0

	if strings.Contains(goal, "weight") && strings.Contains(goal, "loss") && strings.Contains(typeTag, "weight-loss") {
		score += 10
	}
	if strings.Contains(goal, "muscle") && strings.Contains(typeTag, "muscle-gain") {
		score += 10
	}
	if strings.Contains(goal, "energy") && strings.Contains(typeTag, "maintenance") {
		score += 5
	}

	if strings.EqualFold(profile.LifestyleType, "busy") && strings.Contains(typeTag, "busy") {
		score += 5
	}

	for _, preference := range []string{"vegan", "vegetarian", "keto"} {
		if hasPreference(profile.DietaryPreferences, preference) && strings.Contains(typeTag, preference) {
			score += 10
		}
	}

	return score
}

func hasPreference(preferences []string, want string) bool {
	for _, preference := range preferences {
		if strings.EqualFold(preference, want) {
			return true
		}
	}

	return false
}

// TargetCalories derives the daily calorie target from the selected template:
// the range midpoint, overridden to the minimum for sedentary customers and
// to the maximum for very active customers and athletes.
func TargetCalories(template *entity.MealPlanTemplate, activityLevel string) int {
	switch strings.ToLower(activityLevel) {
	case ActivitySedentary:
		return template.CalorieRange.Min
	case ActivityVeryActive, ActivityAthlete:
		return template.CalorieRange.Max
	default:
		return template.CalorieRange.Midpoint()
	}
}
