package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/inkpress/inkpress/internal/platform/logger"
)

type Config struct {
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"` // Logging level (debug, info, warn, error)

	// PageRoot is the path prefix pages are served under, e.g. "/blog".
	// Empty means the site root. Never ends with a slash.
	PageRoot string `mapstructure:"PAGE_ROOT"`

	// Basic auth guard for the authoring endpoints. Empty user disables it.
	BasicAuthUser     string `mapstructure:"BASIC_AUTH_USER"`
	BasicAuthPassword string `mapstructure:"BASIC_AUTH_PASSWORD"`
	BasicAuthRealm    string `mapstructure:"BASIC_AUTH_REALM"`

	// TemplatesDir overrides the embedded page templates with files on
	// disk. Development convenience.
	TemplatesDir string `mapstructure:"TEMPLATES_DIR"`
}

func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	ctx := context.Background()

	// Load .env file if it exists (godotenv will find it automatically)
	// It's okay if the file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	// Create a new Viper instance
	v := viper.New()

	// Set default values
	v.SetDefault("DATABASE_URL", "postgresql://localhost:5432/inkpress?sslmode=disable")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PAGE_ROOT", "")

	// Enable automatic environment variable reading
	// Viper will now see all environment variables, including those loaded by godotenv
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal the configuration into our struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Normalize the page root so slug links can always be built as
	// PageRoot + "/" + slug.
	config.PageRoot = strings.TrimRight(config.PageRoot, "/")
	if config.PageRoot != "" && !strings.HasPrefix(config.PageRoot, "/") {
		config.PageRoot = "/" + config.PageRoot
	}

	if config.BasicAuthUser == "" {
		bootstrapLogger.Warn(ctx, "no BASIC_AUTH_USER configured, authoring endpoints are unauthenticated")
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"server_address", config.ServerAddress,
		"page_root", config.PageRoot,
	)

	return config, nil
}
