package server

import (
	"github.com/inkpress/inkpress/internal/adapters/rest"
	"github.com/inkpress/inkpress/internal/platform/logger"
	"github.com/inkpress/inkpress/internal/render"
)

// provideVersion provides the application version
func provideVersion() string {
	return "1.0.0"
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

// providePageRoot exposes the configured page root to the REST handlers
func providePageRoot(config Config) rest.PageRoot {
	return rest.PageRoot(config.PageRoot)
}

// provideRendererConfig creates renderer config from server config
func provideRendererConfig(config Config) render.Config {
	return render.Config{
		PageRoot:     config.PageRoot,
		TemplatesDir: config.TemplatesDir,
		Reload:       config.Environment == "development" && config.TemplatesDir != "",
	}
}
