package plan

import (
	"strings"
	"testing"

	"lnlfit/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptContext_AbsentFieldsRenderExplicitly(t *testing.T) {
	template := DefaultTemplate()

	context := BuildPromptContext("", nil, template, 2000)

	assert.Contains(t, context, "- Name: Customer")
	assert.Contains(t, context, "- Primary Goal: general health")
	assert.Contains(t, context, "- Dietary Preferences: none specified")
	assert.Contains(t, context, "- Allergies: none")
	assert.Contains(t, context, "- Disliked Foods: none")
	assert.Contains(t, context, "- Target Calories: 2000 per day")
	assert.Contains(t, context, "- Macro Split: 30% protein, 40% carbs, 30% fat")
	assert.NotContains(t, context, "Sample Meals for Reference")
}

func TestBuildPromptContext_PopulatedProfile(t *testing.T) {
	profile := &entity.CustomerProfile{
		PrimaryGoal:        "muscle-gain",
		DietaryPreferences: []string{"vegetarian", "low-carb"},
		Allergies:          []string{"peanuts"},
		DislikedFoods:      []string{"mushrooms"},
		LifestyleType:      "busy",
		CookingPreference:  "quick-easy",
		ActivityLevel:      "very-active",
	}
	template := &entity.MealPlanTemplate{
		Name:         "Muscle Gain Beginner",
		CalorieRange: entity.CalorieRange{Min: 2400, Max: 2800},
		MacroSplit:   entity.MacroSplit{Protein: 40, Carbs: 40, Fat: 20},
		MealsPerDay:  4,
		Guidelines:   "Prioritize protein at every meal.",
		SampleMeals:  "Grilled tofu bowl",
	}

	context := BuildPromptContext("Alex", profile, template, 2800)

	assert.Contains(t, context, "- Name: Alex")
	assert.Contains(t, context, "- Dietary Preferences: vegetarian, low-carb")
	assert.Contains(t, context, "- Allergies: peanuts")
	assert.Contains(t, context, "- Meals Per Day: 4")
	assert.Contains(t, context, "Sample Meals for Reference:\nGrilled tofu bowl")
	assert.True(t, strings.HasSuffix(context, "following these guidelines exactly."))
}

func TestBuildPromptContext_Deterministic(t *testing.T) {
	profile := &entity.CustomerProfile{PrimaryGoal: "weight-loss"}
	template := DefaultTemplate()

	first := BuildPromptContext("Sam", profile, template, 1800)
	for range 5 {
		assert.Equal(t, first, BuildPromptContext("Sam", profile, template, 1800))
	}
}
