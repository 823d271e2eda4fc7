package entity

import "time"

// Chat message roles as used by the chat completion API.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single turn in a lead-capture conversation.
type ChatMessage struct {
	Role    string `json:"role" firestore:"role"`
	Content string `json:"content" firestore:"content"`
}

// CustomerProfile is the structured snapshot extracted from a conversation.
// Every field is optional; absent values stay empty rather than failing extraction.
type CustomerProfile struct {
	Name               string   `json:"name,omitempty" firestore:"name"`
	PrimaryGoal        string   `json:"primaryGoal,omitempty" firestore:"primaryGoal"`               // weight-loss | muscle-gain | energy | health | maintenance | other
	DietaryPreferences []string `json:"dietaryPreferences,omitempty" firestore:"dietaryPreferences"` // e.g. vegan, vegetarian, keto, gluten-free
	Allergies          []string `json:"allergies,omitempty" firestore:"allergies"`
	DislikedFoods      []string `json:"dislikedFoods,omitempty" firestore:"dislikedFoods"`
	LifestyleType      string   `json:"lifestyleType,omitempty" firestore:"lifestyleType"` // busy | moderate | flexible
	CookingPreference  string   `json:"cookingPreference,omitempty" firestore:"cookingPreference"`
	PastDietExperience string   `json:"pastDietExperience,omitempty" firestore:"pastDietExperience"`
	ActivityLevel      string   `json:"activityLevel,omitempty" firestore:"activityLevel"` // sedentary | lightly-active | moderately-active | very-active | athlete
}

// ChatSession is an append-only conversation record, linked to a customer once
// checkout occurs. The session token doubles as the document ID.
type ChatSession struct {
	Token            string           `json:"token" firestore:"sessionToken"`
	Messages         []ChatMessage    `json:"messages" firestore:"messages"`
	MessageCount     int              `json:"messageCount" firestore:"messageCount"`
	ExtractedProfile *CustomerProfile `json:"extractedProfile,omitempty" firestore:"extractedProfile"`
	AffiliateCode    string           `json:"affiliateCode,omitempty" firestore:"affiliateCode"` // Attribution captured at session creation.
	CustomerID       string           `json:"customerId,omitempty" firestore:"customerId"`       // Set when the visitor checks out.
	CustomerName     string           `json:"customerName,omitempty" firestore:"customerName"`
	CustomerEmail    string           `json:"customerEmail,omitempty" firestore:"customerEmail"`
	CreatedAt        time.Time        `json:"createdAt" firestore:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt" firestore:"updatedAt"`
}
