package usecase

import (
	"context"

	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateRouteInput defines the data required to save a route.
type CreateRouteInput struct {
	Name          string
	Description   string
	StartLocation entity.Location
	EndLocation   entity.Location
}

// NearbyStopsInput locates stops around a point. Radius is in kilometers.
type NearbyStopsInput struct {
	Latitude  float64
	Longitude float64
	Radius    float64
	Limit     int
}

// TransportUsecase covers routes, favorites and live transport lookups.
type TransportUsecase interface {
	ListRoutes(ctx context.Context, page repository.Page) ([]*entity.Route, error)
	CreateRoute(ctx context.Context, userID uuid.UUID, input *CreateRouteInput) (*entity.Route, error)
	GetRoute(ctx context.Context, routeID uuid.UUID) (*entity.Route, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*entity.FavoriteRoute, error)
	AddFavorite(ctx context.Context, userID, routeID uuid.UUID) (*entity.FavoriteRoute, error)
	RemoveFavorite(ctx context.Context, userID, routeID uuid.UUID) error
	NearbyStops(ctx context.Context, input *NearbyStopsInput) ([]*entity.BusStop, error)
	ActiveBuses(ctx context.Context, routeID *uuid.UUID) ([]*entity.Bus, error)
}
