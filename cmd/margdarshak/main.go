package main

import (
	"context"
	"log/slog"
	"os"

	"margdarshak/config"
	"margdarshak/internal/delivery"
	"margdarshak/internal/delivery/api"
	"margdarshak/internal/delivery/api/middleware"
	"margdarshak/internal/delivery/api/router/handler"
	"margdarshak/internal/delivery/api/session"
	"margdarshak/internal/infra/auth"
	"margdarshak/internal/infra/auth/google"
	logs "margdarshak/internal/infra/log"
	"margdarshak/internal/infra/persistence/memory"
	"margdarshak/internal/infra/persistence/postgres"
	"margdarshak/internal/infra/pubsub"
	"margdarshak/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		injectInfra(),
		injectRepo(cfg),
		injectService(cfg),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			logs.New,
			context.Background,
		),
		pubsub.Module,
	)
}

// injectRepo selects the credential store backend named by database.driver.
func injectRepo(cfg *config.Config) fx.Option {
	if cfg.Database.Driver == config.DatabaseDriverMemory {
		return fx.Provide(
			memory.NewStore,
			memory.NewTransactionManager,
		)
	}

	return fx.Provide(
		postgres.New,
		postgres.NewTransactionManager,
	)
}

func injectService(cfg *config.Config) fx.Option {
	options := []fx.Option{
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	}

	// Federated sign-in is only offered for configured providers
	if cfg.GoogleOAuth != nil && cfg.GoogleOAuth.ClientID != "" {
		options = append(options, fx.Provide(
			fx.Annotate(
				google.NewOAuthService,
				fx.ResultTags(`group:"oauth_providers"`),
			),
		))
	} else {
		options = append(options, fx.Invoke(func(logger *slog.Logger) {
			logger.Warn("Google OAuth not configured, federated sign-in disabled")
		}))
	}

	return fx.Options(options...)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityService,
			impl.NewSessionService,
			impl.NewFederationService,
			impl.NewTransportService,
			impl.NewNotificationService,
			impl.NewSOSService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			session.NewCookies,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewOAuthHandler,
			handler.NewTransportHandler,
			handler.NewNotificationHandler,
			handler.NewSOSHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
