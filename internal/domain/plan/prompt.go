package plan

import (
	"fmt"
	"strings"

	"lnlfit/internal/domain/entity"
)

// Placeholder values for absent profile fields. Absent fields render as
// explicit text instead of being omitted so the prompt structure stays stable
// across customers.
const (
	noneSpecified = "none specified"
	noneListed    = "none"
)

// BuildPromptContext renders the deterministic natural-language context block
// submitted to the text generation service alongside the fixed instruction
// prompt. Every profile and template field is always present in the output.
func BuildPromptContext(customerName string, profile *entity.CustomerProfile, template *entity.MealPlanTemplate, targetCalories int) string {
	if profile == nil {
		profile = &entity.CustomerProfile{}
	}

	name := firstNonEmpty(customerName, profile.Name, "Customer")

	var b strings.Builder
	b.WriteString("CUSTOMER PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", name)
	fmt.Fprintf(&b, "- Primary Goal: %s\n", firstNonEmpty(profile.PrimaryGoal, "general health"))
	fmt.Fprintf(&b, "- Dietary Preferences: %s\n", joinOr(profile.DietaryPreferences, noneSpecified))
	fmt.Fprintf(&b, "- Allergies: %s\n", joinOr(profile.Allergies, noneListed))
	fmt.Fprintf(&b, "- Disliked Foods: %s\n", joinOr(profile.DislikedFoods, noneListed))
	fmt.Fprintf(&b, "- Lifestyle: %s\n", firstNonEmpty(profile.LifestyleType, "moderate"))
	fmt.Fprintf(&b, "- Cooking Preference: %s\n", firstNonEmpty(profile.CookingPreference, "willing to cook"))
	fmt.Fprintf(&b, "- Activity Level: %s\n", firstNonEmpty(profile.ActivityLevel, "moderately active"))

	b.WriteString("\nTEMPLATE GUIDELINES:\n")
	fmt.Fprintf(&b, "- Template: %s\n", template.Name)
	fmt.Fprintf(&b, "- Target Calories: %d per day\n", targetCalories)
	fmt.Fprintf(&b, "- Macro Split: %d%% protein, %d%% carbs, %d%% fat\n",
		template.MacroSplit.Protein, template.MacroSplit.Carbs, template.MacroSplit.Fat)
	fmt.Fprintf(&b, "- Meals Per Day: %d\n", template.MealsPerDay)
	fmt.Fprintf(&b, "- Additional Guidelines: %s\n", firstNonEmpty(template.Guidelines, "None"))
	if template.SampleMeals != "" {
		fmt.Fprintf(&b, "\nSample Meals for Reference:\n%s\n", template.SampleMeals)
	}

	b.WriteString("\nCreate a personalized 7-day meal plan following these guidelines exactly.")

	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}

	return strings.Join(values, ", ")
}
