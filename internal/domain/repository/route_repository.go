package repository

import (
	"context"

	"margdarshak/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrRouteNotFound is returned when a route does not exist.
	ErrRouteNotFound = errors.New("route not found")
	// ErrFavoriteNotFound is returned when the user has not favored the route.
	ErrFavoriteNotFound = errors.New("favorite route not found")
	// ErrFavoriteExists is returned when the user already favored the route.
	ErrFavoriteExists = errors.New("favorite route already exists")
)

// Page bounds a listing query.
type Page struct {
	Offset int
	Limit  int
}

// RouteRepository persists routes and per-user favorites.
type RouteRepository interface {
	ListRoutes(ctx context.Context, page Page) ([]*entity.Route, error)
	FindRouteByID(ctx context.Context, id uuid.UUID) (*entity.Route, error)
	CreateRoute(ctx context.Context, route *entity.Route) error

	// ListFavorites returns the user's favorites with their routes loaded.
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*entity.FavoriteRoute, error)
	FindFavorite(ctx context.Context, userID, routeID uuid.UUID) (*entity.FavoriteRoute, error)
	CreateFavorite(ctx context.Context, favorite *entity.FavoriteRoute) error
	DeleteFavorite(ctx context.Context, userID, routeID uuid.UUID) error
}
