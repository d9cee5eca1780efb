// Package config provides configuration loading and validation for the API server.
// It uses koanf to merge environment variables with optional file overrides, and
// resolves, per external integration, whether real credentials are present.
// Integrations left unconfigured (or set to their placeholder sentinel) steer the
// data service into mock mode instead of failing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Integration names recognized by IsConfigured and UseMockData.
const (
	IntegrationDatabase  = "database"
	IntegrationRest      = "rest"
	IntegrationStorage   = "storage"
	IntegrationMaps      = "maps"
	IntegrationAnalytics = "analytics"
	IntegrationGeocoding = "geocoding"
	IntegrationRedis     = "redis"
	IntegrationAI        = "ai"
)

// Placeholder sentinels shipped in .env.example files. A credential equal to
// its sentinel counts as "not configured".
var placeholders = map[string]bool{
	"your_database_url":        true,
	"your_supabase_url":        true,
	"your_supabase_anon_key":   true,
	"your_google_maps_api_key": true,
	"your_analytics_id":        true,
	"your_geocoding_api_key":   true,
	"your_openai_api_key":      true,
	"your_storage_access_key":  true,
	"your_storage_secret_key":  true,
	"changeme":                 true,
}

// Config holds all configuration values for the API server.
type Config struct {
	// Server settings
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`

	// Postgres (typed client transport)
	DatabaseURL string `koanf:"database_url"`

	// Supabase-style REST fallback transport
	RestURL string `koanf:"rest_url"`
	RestKey string `koanf:"rest_key"`

	// JWT Authentication
	JWTSecret string `koanf:"jwt_secret"`

	// Maps / Analytics (client-facing keys surfaced through /settings)
	MapsAPIKey           string `koanf:"maps_api_key"`
	AnalyticsMeasurement string `koanf:"analytics_measurement_id"`

	// Geocoding
	GeocodingUserAgent string `koanf:"geocoding_user_agent"`
	GeocodingAPIKey    string `koanf:"geocoding_api_key"`

	// Object storage (S3-compatible)
	StorageBucket      string `koanf:"storage_bucket"`
	StorageAccessKeyID string `koanf:"storage_access_key_id"`
	StorageSecretKey   string `koanf:"storage_secret_key"`
	StorageEndpoint    string `koanf:"storage_endpoint"`
	StoragePublicURL   string `koanf:"storage_public_url"`
	MaxUploadSizeMB    int    `koanf:"max_upload_size_mb"`

	// Redis (rate limiting)
	RedisURL string `koanf:"redis_url"`

	// AI enhancement provider
	OpenAIAPIKey string `koanf:"openai_api_key"`
	OpenAIModel  string `koanf:"openai_model"`

	// CORS
	AllowedOrigins []string `koanf:"allowed_origins"`

	// MockDataOverride forces mock mode even when the database is configured.
	MockDataOverride bool `koanf:"use_mock_data"`
}

// Configuration validation errors.
var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required in production")
	ErrInvalidPort      = errors.New("PORT must be a valid integer")
)

// Default values for non-secret configuration.
const (
	DefaultPort               = 8080
	DefaultEnv                = "development"
	DefaultMaxUploadSizeMB    = 10
	DefaultOpenAIModel        = "gpt-4o-mini"
	DefaultGeocodingUserAgent = "worldpianos-api/1.0 (hello@worldpianos.org)"
)

// Load reads configuration from environment variables and an optional config file.
// Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if valid).
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	// Load from YAML file first if provided (lower precedence)
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	port, portErr := getEnvIntOrDefault("PORT", k.Int("port"), DefaultPort)
	if portErr != nil {
		loadErrs = append(loadErrs, portErr)
	}

	maxUpload, uploadErr := getEnvIntOrDefault("MAX_UPLOAD_SIZE_MB", k.Int("max_upload_size_mb"), DefaultMaxUploadSizeMB)
	if uploadErr != nil {
		loadErrs = append(loadErrs, uploadErr)
	}

	cfg := &Config{
		Port:                 port,
		Env:                  getEnvOrDefaultMulti([]string{"APP_ENV", "ENV", "GO_ENV"}, k.String("env"), DefaultEnv),
		DatabaseURL:          getEnvOrKoanf("DATABASE_URL", k, "database_url"),
		RestURL:              getEnvOrKoanf("SUPABASE_URL", k, "rest_url"),
		RestKey:              getEnvOrKoanf("SUPABASE_ANON_KEY", k, "rest_key"),
		JWTSecret:            getEnvOrKoanf("JWT_SECRET", k, "jwt_secret"),
		MapsAPIKey:           getEnvOrKoanf("GOOGLE_MAPS_API_KEY", k, "maps_api_key"),
		AnalyticsMeasurement: getEnvOrKoanf("GA_MEASUREMENT_ID", k, "analytics_measurement_id"),
		GeocodingUserAgent:   getEnvOrDefault("GEOCODING_USER_AGENT", k.String("geocoding_user_agent"), DefaultGeocodingUserAgent),
		GeocodingAPIKey:      getEnvOrKoanf("GEOCODING_API_KEY", k, "geocoding_api_key"),
		StorageBucket:        getEnvOrKoanf("STORAGE_BUCKET", k, "storage_bucket"),
		StorageAccessKeyID:   getEnvOrKoanf("STORAGE_ACCESS_KEY_ID", k, "storage_access_key_id"),
		StorageSecretKey:     getEnvOrKoanf("STORAGE_SECRET_KEY", k, "storage_secret_key"),
		StorageEndpoint:      getEnvOrKoanf("STORAGE_ENDPOINT", k, "storage_endpoint"),
		StoragePublicURL:     getEnvOrKoanf("STORAGE_PUBLIC_URL", k, "storage_public_url"),
		MaxUploadSizeMB:      maxUpload,
		RedisURL:             getEnvOrKoanf("REDIS_URL", k, "redis_url"),
		OpenAIAPIKey:         getEnvOrKoanf("OPENAI_API_KEY", k, "openai_api_key"),
		OpenAIModel:          getEnvOrDefault("OPENAI_MODEL", k.String("openai_model"), DefaultOpenAIModel),
		MockDataOverride:     getEnvBool("USE_MOCK_DATA", k.Bool("use_mock_data")),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else {
		cfg.AllowedOrigins = k.Strings("allowed_origins")
	}

	errs := cfg.Validate()
	errs = append(loadErrs, errs...)

	return cfg, errs
}

// IsConfigured reports whether the named integration has real credentials:
// present and not equal to a placeholder sentinel. Unknown integration names
// report false.
func (c *Config) IsConfigured(integration string) bool {
	switch integration {
	case IntegrationDatabase:
		return configured(c.DatabaseURL)
	case IntegrationRest:
		return configured(c.RestURL) && configured(c.RestKey)
	case IntegrationStorage:
		return configured(c.StorageBucket) && configured(c.StorageAccessKeyID) &&
			configured(c.StorageSecretKey) && configured(c.StorageEndpoint)
	case IntegrationMaps:
		return configured(c.MapsAPIKey)
	case IntegrationAnalytics:
		return configured(c.AnalyticsMeasurement)
	case IntegrationGeocoding:
		// Nominatim-style geocoding needs only a descriptive User-Agent;
		// an API key upgrades to a commercial provider but is not required.
		return configured(c.GeocodingUserAgent)
	case IntegrationRedis:
		return configured(c.RedisURL)
	case IntegrationAI:
		return configured(c.OpenAIAPIKey)
	}
	return false
}

// UseMockData resolves the mock-vs-live decision. The global flag is the
// explicit override OR the database being unconfigured; passing an integration
// name additionally ORs in that integration's unconfigured state. The empty
// string asks for the global flag only. Pure function of the config: no
// combination of inputs panics or errors.
func (c *Config) UseMockData(integration string) bool {
	global := c.MockDataOverride || !c.IsConfigured(IntegrationDatabase)
	if integration == "" {
		return global
	}
	return global || !c.IsConfigured(integration)
}

func configured(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	return !placeholders[strings.ToLower(v)]
}

// getEnvOrKoanf returns the environment variable value if set, otherwise the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first non-empty value found, otherwise the koanf value, or default.
func getEnvOrDefaultMulti(envKeys []string, koanfVal string, defaultVal string) string {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefault returns the environment variable as int if set, otherwise the koanf value, or default.
// Returns an error if the environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefault(envKey string, koanfVal int, defaultVal int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid integer: %w", envKey, ErrInvalidPort)
		}
		return i, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// getEnvBool returns the environment variable as a bool, falling back to the
// koanf value. Unrecognized strings leave the koanf value untouched.
func getEnvBool(envKey string, koanfVal bool) bool {
	switch strings.ToLower(os.Getenv(envKey)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return koanfVal
}

// Validate checks configuration consistency. Most integrations are optional
// (absence selects mock mode), so only hard requirements are checked here.
func (c *Config) Validate() []error {
	var errs []error

	if c.Env == "production" && c.JWTSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, ErrInvalidPort)
	}

	return errs
}

// LogSummary returns a summary of the configuration suitable for logging.
// All secrets are masked to prevent accidental exposure.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"port":             fmt.Sprintf("%d", c.Port),
		"env":              c.Env,
		"database_url":     maskDatabaseURL(c.DatabaseURL),
		"rest_url":         c.RestURL,
		"rest_key":         maskSecret(c.RestKey),
		"jwt_secret":       maskSecret(c.JWTSecret),
		"maps_api_key":     maskSecret(c.MapsAPIKey),
		"analytics_id":     c.AnalyticsMeasurement,
		"geocoding_key":    maskSecret(c.GeocodingAPIKey),
		"storage_bucket":   c.StorageBucket,
		"storage_endpoint": c.StorageEndpoint,
		"storage_key_id":   maskSecret(c.StorageAccessKeyID),
		"redis_url":        maskDatabaseURL(c.RedisURL),
		"openai_api_key":   maskSecret(c.OpenAIAPIKey),
		"openai_model":     c.OpenAIModel,
		"max_upload_mb":    fmt.Sprintf("%d", c.MaxUploadSizeMB),
		"use_mock_data":    fmt.Sprintf("%t", c.UseMockData("")),
	}
}

// maskSecret masks a secret value, showing only the first 4 characters followed by ****
// If the secret is shorter than 8 characters, it's fully masked.
func maskSecret(s string) string {
	if s == "" {
		return "<not set>"
	}
	if len(s) < 8 {
		return "****"
	}
	return s[:4] + "****"
}

// maskDatabaseURL masks the password in a connection URL.
func maskDatabaseURL(s string) string {
	if s == "" {
		return "<not set>"
	}

	schemeEnd := strings.Index(s, "://")
	if schemeEnd == -1 {
		return maskSecret(s)
	}

	rest := s[schemeEnd+3:]
	atIndex := strings.Index(rest, "@")
	if atIndex == -1 {
		return s // No credentials in URL
	}

	colonIndex := strings.Index(rest[:atIndex], ":")
	if colonIndex == -1 {
		return s // No password (only username)
	}

	scheme := s[:schemeEnd+3]
	user := rest[:colonIndex]
	hostAndPath := rest[atIndex:]

	return scheme + user + ":****" + hostAndPath
}
