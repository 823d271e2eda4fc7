// Package constants holds shared domain-level constant values.
package constants

// Deployment environments.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub provider identifiers used in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Firestore collection names.
const (
	CollectionCustomers            = "customers"
	CollectionChatSessions         = "chatSessions"
	CollectionOrders               = "orders"
	CollectionMealPlans            = "mealPlans"
	CollectionMealPlanTemplates    = "mealPlanTemplates"
	CollectionAffiliates           = "affiliates"
	CollectionAffiliateCommissions = "affiliateCommissions"
	CollectionAffiliateClicks      = "affiliateClicks"
	CollectionAdminUsers           = "adminUsers"
)
