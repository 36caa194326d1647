// Package config resolves service configuration from the environment once at
// startup. The resolved value is injected into the components that need it;
// nothing below the entrypoint reads credentials ambiently.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted by SCHOOLFINDER_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Validation policy names accepted by SCHOOLFINDER_VALIDATION.
const (
	ValidationLenient = "lenient"
	ValidationStrict  = "strict"
)

// Config carries everything the service needs to run. Built once by
// [FromEnv] and passed around explicitly.
type Config struct {
	Provider    string        // which ai.Provider implementation to use
	APIKey      string        // credential for the chosen provider
	Model       string        // optional model override
	Addr        string        // HTTP listen address
	FrontendDir string        // directory of static frontend assets
	Validation  string        // lenient or strict normalization
	JSONRepair  bool          // enable the jsonrepair parse fallback
	TargetCount int           // entries the prompt asks for per search
	Timeout     time.Duration // per-call deadline on the model request
}

// FromEnv reads the environment and returns a validated Config. The API key
// for the chosen provider is required: a missing credential fails here, fast,
// before any model call is attempted.
func FromEnv() (Config, error) {
	cfg := Config{
		Provider:    getEnv("SCHOOLFINDER_PROVIDER", ProviderGemini),
		Model:       os.Getenv("SCHOOLFINDER_MODEL"),
		Addr:        getEnv("SCHOOLFINDER_ADDR", ":8080"),
		FrontendDir: getEnv("SCHOOLFINDER_FRONTEND_DIR", "./frontend"),
		Validation:  getEnv("SCHOOLFINDER_VALIDATION", ValidationLenient),
	}

	switch cfg.Provider {
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	case ProviderAnthropic:
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	default:
		return Config{}, fmt.Errorf("unknown provider %q (expected %s, %s, or %s)", cfg.Provider, ProviderGemini, ProviderOpenAI, ProviderAnthropic)
	}

	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("no API key configured for provider %q: set the provider's *_API_KEY environment variable", cfg.Provider)
	}

	if cfg.Validation != ValidationLenient && cfg.Validation != ValidationStrict {
		return Config{}, fmt.Errorf("unknown validation mode %q (expected %s or %s)", cfg.Validation, ValidationLenient, ValidationStrict)
	}

	if v := os.Getenv("SCHOOLFINDER_JSON_REPAIR"); v != "" {
		repair, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SCHOOLFINDER_JSON_REPAIR value %q: %w", v, err)
		}
		cfg.JSONRepair = repair
	}

	if v := os.Getenv("SCHOOLFINDER_TARGET_COUNT"); v != "" {
		count, err := strconv.Atoi(v)
		if err != nil || count <= 0 {
			return Config{}, fmt.Errorf("invalid SCHOOLFINDER_TARGET_COUNT value %q", v)
		}
		cfg.TargetCount = count
	}

	if v := os.Getenv("SCHOOLFINDER_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("invalid SCHOOLFINDER_TIMEOUT value %q", v)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
