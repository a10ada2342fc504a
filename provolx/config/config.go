package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5000",
	"https://finxan.your-subdomain.pages.dev", // Cloudflare Pages deployment
	"https://finxan.pages.dev",
}

// Per-provider model used when neither the config file nor the environment names one.
const (
	DefaultGeminiModel = "gemini-2.0-flash-exp"
	DefaultOpenAIModel = "gpt-4o-mini"
)

var ErrMissingAPIKey = errors.New("missing upstream API key")

// Config is built once at startup and passed by value; nothing reads the environment after that.
type Config struct {
	Provider        string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	Model           string
	MaxOutputTokens int32
	Port            string
	AllowedOrigins  []string
	LogDir          string
}

// fileConfig is the optional YAML overlay named by PROVOLX_CONFIG. Credentials
// are deliberately absent: they only come from the environment.
type fileConfig struct {
	Provider        string   `yaml:"provider"`
	Model           string   `yaml:"model"`
	OpenAIBaseURL   string   `yaml:"openai_base_url"`
	MaxOutputTokens int32    `yaml:"max_output_tokens"`
	Port            string   `yaml:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	LogDir          string   `yaml:"log_dir"`
}

func defaults() Config {
	return Config{
		Provider:       ProviderGemini,
		OpenAIBaseURL:  "https://api.openai.com/v1",
		Port:           "8001",
		AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		LogDir:         "./logs",
	}
}

// LoadConfig resolves defaults, then the YAML file (if any), then the environment.
// It fails when the selected provider has no credential.
func LoadConfig() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("PROVOLX_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Provider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.Provider))
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", "")
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", "")
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.Model = cfg.resolveModel()
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)

	if v := getEnv("MAX_OUTPUT_TOKENS", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid MAX_OUTPUT_TOKENS %q", v)
		}
		cfg.MaxOutputTokens = int32(n)
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.Provider != "" {
		c.Provider = fc.Provider
	}
	if fc.Model != "" {
		c.Model = fc.Model
	}
	if fc.OpenAIBaseURL != "" {
		c.OpenAIBaseURL = fc.OpenAIBaseURL
	}
	if fc.MaxOutputTokens > 0 {
		c.MaxOutputTokens = fc.MaxOutputTokens
	}
	if fc.Port != "" {
		c.Port = fc.Port
	}
	if len(fc.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.LogDir != "" {
		c.LogDir = fc.LogDir
	}
	return nil
}

// resolveModel picks the provider's model env var, then the file value, then the provider default.
func (c Config) resolveModel() string {
	switch c.Provider {
	case ProviderOpenAI:
		return getEnv("OPENAI_MODEL", firstNonEmpty(c.Model, DefaultOpenAIModel))
	default:
		return getEnv("GEMINI_MODEL", firstNonEmpty(c.Model, DefaultGeminiModel))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c Config) validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY environment variable is required", ErrMissingAPIKey)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY environment variable is required", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
