package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string `mapstructure:"server_host"`
	ServerPort string `mapstructure:"server_port"`

	// Database configuration
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSSLMode  string `mapstructure:"db_ssl_mode"`

	// Redis configuration (optional, used to cache generation responses)
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// JWT configuration
	JWTSecret string `mapstructure:"jwt_secret"`

	// Gemini generation service
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiAPIURL string `mapstructure:"gemini_api_url"`

	LogLevel string `mapstructure:"log_level"`
}

// Load builds a Config from the process environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"server_host":    "SERVER_HOST",
		"server_port":    "SERVER_PORT",
		"db_host":        "DB_HOST",
		"db_port":        "DB_PORT",
		"db_user":        "DB_USER",
		"db_password":    "DB_PASSWORD",
		"db_name":        "DB_NAME",
		"db_ssl_mode":    "DB_SSL_MODE",
		"redis_host":     "REDIS_HOST",
		"redis_port":     "REDIS_PORT",
		"redis_password": "REDIS_PASSWORD",
		"redis_db":       "REDIS_DB",
		"jwt_secret":     "JWT_SECRET",
		"gemini_api_key": "GEMINI_API_KEY",
		"gemini_api_url": "GEMINI_API_URL",
		"log_level":      "LOG_LEVEL",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server_host", "0.0.0.0")
	viper.SetDefault("server_port", "8080")

	viper.SetDefault("db_host", "localhost")
	viper.SetDefault("db_port", "5432")
	viper.SetDefault("db_user", "postgres")
	viper.SetDefault("db_name", "recipe_planner")
	viper.SetDefault("db_ssl_mode", "disable")

	viper.SetDefault("redis_db", 0)

	viper.SetDefault("gemini_api_url",
		"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent")

	viper.SetDefault("log_level", "info")
}
