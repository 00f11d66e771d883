package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the assistant.
type Config struct {
	App          AppConfig
	Logger       LoggerConfig
	LLM          LLMConfig
	Agent        AgentConfig
	Fixtures     FixturesConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	Auth         AuthConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	// Output is a zap output path; the CLI points it at stderr.
	Output string
	// Format is "json" or "console".
	Format string
}

// LLMConfig selects and configures the language model provider.
type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// AgentConfig bounds the tool-calling loop.
type AgentConfig struct {
	MaxSteps      int
	DefaultUserID string
}

// FixturesConfig points at the mock corpus and directory.
type FixturesConfig struct {
	Path          string
	MockLatencyMS int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig bounds assist requests per user and minute. Zero disables it.
type RateLimitConfig struct {
	PerMinute int
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	Enabled               bool
	JWTSecret             string
	AccessTokenTTLMinutes int
	OperatorPasswordHash  string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.3"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}

	provider := getEnv("LLM_PROVIDER", "openai")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "support-agent"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 60),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		LLM: LLMConfig{
			Provider:    provider,
			APIKey:      apiKeyFor(provider),
			BaseURL:     os.Getenv("LLM_BASE_URL"),
			Model:       os.Getenv("LLM_MODEL"),
			Temperature: temperature,
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 1024),
		},
		Agent: AgentConfig{
			MaxSteps:      getEnvAsInt("AGENT_MAX_STEPS", 6),
			DefaultUserID: getEnv("AGENT_DEFAULT_USER_ID", "user-1"),
		},
		Fixtures: FixturesConfig{
			Path:          os.Getenv("FIXTURES_PATH"),
			MockLatencyMS: getEnvAsInt("MOCK_LATENCY_MS", 0),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
		},
		Auth: AuthConfig{
			Enabled:               getEnvAsBool("AUTH_ENABLED", true),
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			OperatorPasswordHash:  os.Getenv("AUTH_OPERATOR_PASSWORD_HASH"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// MockLatency returns the artificial delay applied by the mock collaborators.
func (f FixturesConfig) MockLatency() time.Duration {
	if f.MockLatencyMS <= 0 {
		return 0
	}
	return time.Duration(f.MockLatencyMS) * time.Millisecond
}

// SetProvider switches the provider and picks up its API key.
func (l *LLMConfig) SetProvider(provider string) {
	l.Provider = provider
	l.APIKey = apiKeyFor(provider)
}

// apiKeyFor prefers LLM_API_KEY and falls back to the vendor specific variable.
func apiKeyFor(provider string) string {
	if key := os.Getenv("LLM_API_KEY"); key != "" {
		return key
	}
	switch provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
