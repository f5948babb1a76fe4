// Package config loads the runtime configuration from .env files and
// environment variables, plus the optional analytics rule file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"teampulse/internal/analytics"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Port        string
	FrontendURL string

	MongoURI      string
	MongoDatabase string

	JWTSecret     string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration

	GeminiAPIKey string
	GeminiModel  string

	DataPath string
	LogDir   string

	// Analytics rule tuning, read from AnalyticsRulesPath when set.
	Thresholds analytics.Thresholds
	RiskPolicy analytics.RiskPolicy
}

// rulesFile mirrors the on-disk layout of the analytics rule file.
type rulesFile struct {
	Thresholds analytics.Thresholds `yaml:"thresholds"`
	Risk       analytics.RiskPolicy `yaml:"risk"`
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	accessMins, _ := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	refreshHours, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_HOURS", "168"))

	cfg := &AppConfig{
		Port:          getEnv("PORT", "8080"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "teampulse"),
		JWTSecret:     jwtSecret,
		AccessExpiry:  time.Duration(accessMins) * time.Minute,
		RefreshExpiry: time.Duration(refreshHours) * time.Hour,
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		DataPath:      dataPath,
		LogDir:        logDir,
		Thresholds:    analytics.DefaultThresholds(),
		RiskPolicy:    analytics.DefaultRiskPolicy(),
	}

	if rulesPath := os.Getenv("ANALYTICS_RULES_PATH"); rulesPath != "" {
		th, risk, err := loadRules(rulesPath)
		if err != nil {
			return nil, fmt.Errorf("loading analytics rules: %w", err)
		}
		cfg.Thresholds = th
		cfg.RiskPolicy = risk
		log.Info().Str("path", rulesPath).Msg("Loaded analytics rule overrides")
	}

	return cfg, nil
}

// loadRules reads the YAML rule file. Fields absent from the file keep
// their stock values, so partial overrides are fine.
func loadRules(path string) (analytics.Thresholds, analytics.RiskPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analytics.Thresholds{}, analytics.RiskPolicy{}, err
	}

	rules := rulesFile{
		Thresholds: analytics.DefaultThresholds(),
		Risk:       analytics.DefaultRiskPolicy(),
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return analytics.Thresholds{}, analytics.RiskPolicy{}, err
	}
	return rules.Thresholds, rules.Risk, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
