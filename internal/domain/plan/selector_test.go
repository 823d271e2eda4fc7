package plan

import (
	"testing"

	"lnlfit/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeTemplate(id, customerType string) *entity.MealPlanTemplate {
	return &entity.MealPlanTemplate{
		ID:           id,
		Name:         customerType,
		CustomerType: customerType,
		CalorieRange: entity.CalorieRange{Min: 1800, Max: 2200},
		MacroSplit:   entity.MacroSplit{Protein: 30, Carbs: 40, Fat: 30},
		MealsPerDay:  3,
		IsActive:     true,
	}
}

func TestSelectTemplate_GoalMatching(t *testing.T) {
	templates := []*entity.MealPlanTemplate{
		activeTemplate("t1", "weight-loss-standard"),
		activeTemplate("t2", "muscle-gain-beginner"),
		activeTemplate("t3", "maintenance"),
	}

	tests := []struct {
		name    string
		profile *entity.CustomerProfile
		wantID  string
	}{
		{
			name:    "weight loss goal picks weight-loss template",
			profile: &entity.CustomerProfile{PrimaryGoal: "weight-loss"},
			wantID:  "t1",
		},
		{
			name:    "muscle gain goal picks muscle-gain template",
			profile: &entity.CustomerProfile{PrimaryGoal: "muscle-gain"},
			wantID:  "t2",
		},
		{
			name:    "energy goal picks maintenance template",
			profile: &entity.CustomerProfile{PrimaryGoal: "energy"},
			wantID:  "t3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := SelectTemplate(tt.profile, templates)
			assert.Equal(t, tt.wantID, selected.ID)
		})
	}
}

func TestSelectTemplate_DietaryPreferenceOutscoresGoal(t *testing.T) {
	// vegan (+10) plus busy lifestyle (+5) beats a plain muscle-gain match (+10).
	templates := []*entity.MealPlanTemplate{
		activeTemplate("t1", "muscle-gain-beginner"),
		activeTemplate("t2", "vegan-busy"),
	}
	profile := &entity.CustomerProfile{
		PrimaryGoal:        "muscle-gain",
		DietaryPreferences: []string{"vegan"},
		LifestyleType:      "busy",
	}

	selected := SelectTemplate(profile, templates)
	assert.Equal(t, "t2", selected.ID)
}

func TestSelectTemplate_TieResolvesToLowestID(t *testing.T) {
	// muscle-gain match and vegan match both score 10; the lowest template ID wins.
	profile := &entity.CustomerProfile{
		PrimaryGoal:        "muscle-gain",
		DietaryPreferences: []string{"vegan"},
	}

	templates := []*entity.MealPlanTemplate{
		activeTemplate("b", "vegan"),
		activeTemplate("a", "muscle-gain-beginner"),
	}
	selected := SelectTemplate(profile, templates)
	assert.Equal(t, "a", selected.ID)

	// The same candidates in the opposite input order select the same template.
	reversed := []*entity.MealPlanTemplate{templates[1], templates[0]}
	assert.Equal(t, selected.ID, SelectTemplate(profile, reversed).ID)
}

func TestSelectTemplate_Deterministic(t *testing.T) {
	profile := &entity.CustomerProfile{
		PrimaryGoal:        "weight loss",
		DietaryPreferences: []string{"keto"},
		LifestyleType:      "busy",
	}
	templates := []*entity.MealPlanTemplate{
		activeTemplate("t3", "keto"),
		activeTemplate("t1", "weight-loss-busy"),
		activeTemplate("t2", "maintenance"),
	}

	first := SelectTemplate(profile, templates)
	for range 10 {
		assert.Equal(t, first.ID, SelectTemplate(profile, templates).ID)
	}
}

func TestSelectTemplate_EmptySetFallsBackToDefault(t *testing.T) {
	selected := SelectTemplate(&entity.CustomerProfile{PrimaryGoal: "weight-loss"}, nil)

	require.NotNil(t, selected)
	assert.Equal(t, "General Balanced Plan", selected.Name)
	assert.Equal(t, 1800, selected.CalorieRange.Min)
	assert.Equal(t, 2200, selected.CalorieRange.Max)
	assert.Equal(t, entity.MacroSplit{Protein: 30, Carbs: 40, Fat: 30}, selected.MacroSplit)
	assert.Equal(t, 3, selected.MealsPerDay)
}

func TestSelectTemplate_NoScoreStillPicksFirstByID(t *testing.T) {
	// Nothing matches, every template scores zero: the lowest ID is selected
	// rather than falling back to the default.
	templates := []*entity.MealPlanTemplate{
		activeTemplate("t2", "keto"),
		activeTemplate("t1", "vegan"),
	}

	selected := SelectTemplate(&entity.CustomerProfile{PrimaryGoal: "health"}, templates)
	assert.Equal(t, "t1", selected.ID)
}

func TestSelectTemplate_NilProfile(t *testing.T) {
	templates := []*entity.MealPlanTemplate{activeTemplate("t1", "maintenance")}

	selected := SelectTemplate(nil, templates)
	assert.Equal(t, "t1", selected.ID)
}

func TestTargetCalories(t *testing.T) {
	template := activeTemplate("t1", "weight-loss")
	template.CalorieRange = entity.CalorieRange{Min: 1600, Max: 2000}

	tests := []struct {
		activity string
		want     int
	}{
		{activity: "sedentary", want: 1600},
		{activity: "very-active", want: 2000},
		{activity: "athlete", want: 2000},
		{activity: "moderately-active", want: 1800},
		{activity: "", want: 1800},
	}

	for _, tt := range tests {
		t.Run(tt.activity, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetCalories(template, tt.activity))
		})
	}
}
