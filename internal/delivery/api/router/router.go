// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"margdarshak/config"
	"margdarshak/internal/delivery/api/middleware"
	"margdarshak/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	OAuthHandler        *handler.OAuthHandler
	TransportHandler    *handler.TransportHandler
	NotificationHandler *handler.NotificationHandler
	SOSHandler          *handler.SOSHandler
	AuthMiddleware      *middleware.AuthMiddleware
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	oauthHandler        *handler.OAuthHandler
	transportHandler    *handler.TransportHandler
	notificationHandler *handler.NotificationHandler
	sosHandler          *handler.SOSHandler
	authMiddleware      *middleware.AuthMiddleware
	basePath            string
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		oauthHandler:        params.OAuthHandler,
		transportHandler:    params.TransportHandler,
		notificationHandler: params.NotificationHandler,
		sosHandler:          params.SOSHandler,
		authMiddleware:      params.AuthMiddleware,
		basePath:            params.Config.HTTP.BasePath,
	}
}

// RegisterRoutes sets up all the API routes under the configured base path.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group(r.basePath)

	api.GET("/health", handler.HealthCheck)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/validate", r.authHandler.Validate)
		authGroup.POST("/logout", r.authHandler.Logout)
		if r.authHandler.RefreshEnabled() {
			authGroup.POST("/refresh", r.authHandler.Refresh)
		}
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)

		// Federated sign-in, e.g. /auth/google and /auth/google/callback
		authGroup.GET("/:provider", r.oauthHandler.Begin)
		authGroup.GET("/:provider/callback", r.oauthHandler.Callback)
	}

	transportGroup := api.Group("/transport")
	transportGroup.Use(r.authMiddleware.Authenticate)
	{
		transportGroup.GET("/routes", r.transportHandler.ListRoutes)
		transportGroup.POST("/routes", r.transportHandler.CreateRoute)
		transportGroup.GET("/routes/:id", r.transportHandler.GetRoute)
		transportGroup.GET("/favorites", r.transportHandler.ListFavorites)
		transportGroup.POST("/favorites", r.transportHandler.AddFavorite)
		transportGroup.DELETE("/favorites/:route_id", r.transportHandler.RemoveFavorite)
		transportGroup.GET("/nearby", r.transportHandler.NearbyStops)
		transportGroup.GET("/buses/active", r.transportHandler.ActiveBuses)
	}

	userGroup := api.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/notifications", r.notificationHandler.ListNotifications)
		userGroup.POST("/notifications/read/:id", r.notificationHandler.MarkRead)
		userGroup.POST("/notifications/read-all", r.notificationHandler.MarkAllRead)
		userGroup.POST("/sos", r.sosHandler.CreateSOS)
		userGroup.GET("/sos/:id", r.sosHandler.GetSOS)
	}
}
