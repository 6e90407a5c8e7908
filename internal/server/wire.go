//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"

	"github.com/inkpress/inkpress/internal/adapters/postgres"
	"github.com/inkpress/inkpress/internal/adapters/rest"
	"github.com/inkpress/inkpress/internal/platform/eventbus"
	"github.com/inkpress/inkpress/internal/platform/logger"
	pgplatform "github.com/inkpress/inkpress/internal/platform/postgres"
	"github.com/inkpress/inkpress/internal/posts/application"
	"github.com/inkpress/inkpress/internal/render"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		logger.NewBootstrapLogger,
		LoadConfig,

		// Logger configuration
		provideLoggerConfig,

		// Main logger
		logger.NewConfiguredLogger,
		wire.Bind(new(logger.Logger), new(*logger.SlogAdapter)),

		// Database
		ConnectDatabase,
		pgplatform.NewTransactionManager,

		// Repository providers (includes interface binding)
		postgres.ProviderSet,

		// Event bus
		eventbus.ProviderSet,

		// Application services
		application.ProviderSet,

		// Rendering
		provideRendererConfig,
		render.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		providePageRoot,
		provideVersion, // Provide version string for HealthHandler

		// HTTP Server
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}
