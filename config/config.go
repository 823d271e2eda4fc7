// Package config loads service configuration from yaml files with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int    `json:"port" yaml:"port"`
		BaseURL  string `json:"baseUrl" yaml:"baseUrl"` // Public origin used to build redirect URLs.
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Firestore configuration for the document store.
	Firestore *FirestoreConfig `json:"firestore" yaml:"firestore"`

	// Stripe configuration for hosted checkout and webhooks.
	Stripe *StripeConfig `json:"stripe" yaml:"stripe"`

	// OpenAI configuration for chat and plan generation.
	OpenAI *OpenAIConfig `json:"openai" yaml:"openai"`

	// PubSub configuration for the plan generation job queue.
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Generation configuration for the job runner and staleness sweeper.
	Generation *GenerationConfig `json:"generation" yaml:"generation"`

	// SecretKey holds the admin JWT signing secret.
	SecretKey struct {
		Admin string `json:"admin" yaml:"admin"`
	} `json:"secretKey" yaml:"secretKey"`

	// Auth defines back-office authentication parameters.
	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// FirestoreConfig defines document store configuration.
type FirestoreConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// StripeConfig defines payment provider configuration.
type StripeConfig struct {
	SecretKey     string `json:"secretKey" yaml:"secretKey"`
	WebhookSecret string `json:"webhookSecret" yaml:"webhookSecret"`
	PriceID       string `json:"priceId" yaml:"priceId"` // The single meal-plan product price.
	SuccessPath   string `json:"successPath" yaml:"successPath"`
	CancelPath    string `json:"cancelPath" yaml:"cancelPath"`
}

// OpenAIConfig defines text generation configuration. Prompts are versioned
// configuration data; empty fields fall back to the built-in defaults.
type OpenAIConfig struct {
	APIKey          string        `json:"apiKey" yaml:"apiKey"`
	ChatModel       string        `json:"chatModel" yaml:"chatModel"`             // Lead-capture assistant model.
	ExtractionModel string        `json:"extractionModel" yaml:"extractionModel"` // Profile extraction model.
	PlanModel       string        `json:"planModel" yaml:"planModel"`             // Meal plan generation model.
	RequestTimeout  time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
	Prompts         PromptsConfig `json:"prompts" yaml:"prompts"`
}

// PromptsConfig carries the system prompt texts.
type PromptsConfig struct {
	Chat       string `json:"chat" yaml:"chat"`
	Extraction string `json:"extraction" yaml:"extraction"`
	Plan       string `json:"plan" yaml:"plan"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing.
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider).
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider).
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider).
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// GenerationConfig defines job runner parameters.
type GenerationConfig struct {
	// StaleCeiling is how long a plan may sit in generating state before the
	// sweeper fails it.
	StaleCeiling time.Duration `json:"staleCeiling" yaml:"staleCeiling"`

	// SweepInterval is how often the staleness sweeper runs.
	SweepInterval time.Duration `json:"sweepInterval" yaml:"sweepInterval"`
}

// AuthConfig defines back-office authentication parameters.
type AuthConfig struct {
	BcryptCost     int           `json:"bcryptCost" yaml:"bcryptCost"`
	AccessTokenTTL time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
}

// Defaults applied when the corresponding config values are absent.
const (
	defaultStaleCeiling  = 10 * time.Minute
	defaultSweepInterval = time.Minute
)

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to a path and align each segment with
			// existing YAML keys. Example: STRIPE_WEBHOOKSECRET ->
			// stripe.webhookSecret (not stripe.webhooksecret).
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Generation == nil {
		cfg.Generation = &GenerationConfig{}
	}
	if cfg.Generation.StaleCeiling <= 0 {
		cfg.Generation.StaleCeiling = defaultStaleCeiling
	}
	if cfg.Generation.SweepInterval <= 0 {
		cfg.Generation.SweepInterval = defaultSweepInterval
	}

	applyPromptDefaults(cfg)

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
