package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"stripe": map[string]any{
			"webhookSecret": "",
			"priceId":       "",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"openai": map[string]any{
			"apiKey": "",
		},
		"secretKey": map[string]any{
			"admin": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "STRIPE_WEBHOOKSECRET", want: "stripe.webhookSecret"},
		{envKey: "STRIPE_PRICEID", want: "stripe.priceId"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "OPENAI_APIKEY", want: "openai.apiKey"},
		{envKey: "SECRETKEY_ADMIN", want: "secretKey.admin"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
