package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Bipul-Dubey/health-index/shared/constants"
	"github.com/Bipul-Dubey/health-index/shared/db"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

type Config struct {
	Port       string
	GRPCHost   string
	GRPCPort   string
	H2CEnabled bool

	DatasetPath    string
	TargetColumn   string
	ImagePath      string
	ModelsManifest string

	AuthUsername string
	AuthPassword string
	JWTSecret    string
	SessionTTL   time.Duration

	PredictTimeout time.Duration

	DBEnabled bool
	DB        db.Config

	MQTTBroker   string
	MQTTClientID string
	MQTTTopic    string

	// CORSAllowedOrigins enables cross-origin calls to the JSON API.
	CORSAllowedOrigins []string

	LogLevel slog.Level
}

// Load reads the configuration from the environment, after merging an
// optional .env file in the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		GRPCHost:   getEnv("GRPC_HOST", "127.0.0.1"),
		GRPCPort:   getEnv("GRPC_PORT", ""),
		H2CEnabled: getEnvBool("H2C_ENABLED", false),

		DatasetPath:    getEnv("DATASET_PATH", "assets/DeviceUsageDuration.csv"),
		TargetColumn:   getEnv("TARGET_COLUMN", constants.TargetHealthIndex),
		ImagePath:      getEnv("IMAGE_PATH", "assets/Health.jpg"),
		ModelsManifest: getEnv("MODELS_MANIFEST", "assets/models/models.yaml"),

		AuthUsername: getEnv("AUTH_USERNAME", "admin"),
		AuthPassword: getEnv("AUTH_PASSWORD", "password"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		SessionTTL:   getEnvDuration("SESSION_TTL", 24*time.Hour),

		PredictTimeout: getEnvDuration("PREDICT_TIMEOUT", 10*time.Second),

		DBEnabled: getEnvBool("DB_ENABLED", false),
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "health_index"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},

		MQTTBroker:   getEnv("MQTT_BROKER", ""),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "health-index"),
		MQTTTopic:    getEnv("MQTT_TOPIC", "health-index/predictions"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.JWTSecret == "" {
		secret, err := utils.GenerateSecureToken(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		cfg.JWTSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Port == "":
		return errors.New("PORT must not be empty")
	case c.DatasetPath == "":
		return errors.New("DATASET_PATH must not be empty")
	case c.TargetColumn == "":
		return errors.New("TARGET_COLUMN must not be empty")
	case c.ModelsManifest == "":
		return errors.New("MODELS_MANIFEST must not be empty")
	case c.AuthUsername == "" || c.AuthPassword == "":
		return errors.New("AUTH_USERNAME and AUTH_PASSWORD must not be empty")
	case len(c.AuthPassword) > 72:
		return errors.New("AUTH_PASSWORD must be at most 72 bytes")
	case c.SessionTTL <= 0:
		return errors.New("SESSION_TTL must be positive")
	case c.PredictTimeout <= 0:
		return errors.New("PREDICT_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, ""), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
