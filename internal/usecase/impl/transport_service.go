package impl

import (
	"context"
	"log/slog"
	"math"

	deliverycontext "margdarshak/internal/delivery/context"
	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/errors"
	"margdarshak/internal/usecase"

	"github.com/google/uuid"
)

const (
	defaultNearbyRadiusKm = 1.0
	defaultNearbyLimit    = 100
	kmPerDegreeLatitude   = 111.32
)

type transportService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewTransportService is the constructor for transportService.
func NewTransportService(txManager repository.TransactionManager, logger *slog.Logger) usecase.TransportUsecase {
	return &transportService{txManager: txManager, logger: logger}
}

func (srv *transportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *transportService) ListRoutes(ctx context.Context, page repository.Page) ([]*entity.Route, error) {
	var routes []*entity.Route
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		routes, err = repoFactory.NewRouteRepository().ListRoutes(ctx, page)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list routes")
	}

	return routes, nil
}

func (srv *transportService) CreateRoute(ctx context.Context, userID uuid.UUID, input *usecase.CreateRouteInput) (*entity.Route, error) {
	route := &entity.Route{
		UserID:        userID,
		Name:          input.Name,
		Description:   input.Description,
		StartLocation: input.StartLocation,
		EndLocation:   input.EndLocation,
	}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewRouteRepository().CreateRoute(ctx, route)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create route")
	}

	srv.log(ctx).Debug("Route created", slog.Any("routeID", route.ID))

	return route, nil
}

func (srv *transportService) GetRoute(ctx context.Context, routeID uuid.UUID) (*entity.Route, error) {
	var route *entity.Route
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		route, err = repoFactory.NewRouteRepository().FindRouteByID(ctx, routeID)

		return err
	})
	if errors.Is(err, repository.ErrRouteNotFound) {
		return nil, domainerrors.ErrRouteNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get route")
	}

	return route, nil
}

func (srv *transportService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*entity.FavoriteRoute, error) {
	var favorites []*entity.FavoriteRoute
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		favorites, err = repoFactory.NewRouteRepository().ListFavorites(ctx, userID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favorite routes")
	}

	return favorites, nil
}

// AddFavorite checks the route before the pair so an unknown route reports 404 rather than a conflict.
func (srv *transportService) AddFavorite(ctx context.Context, userID, routeID uuid.UUID) (*entity.FavoriteRoute, error) {
	var favorite *entity.FavoriteRoute
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		routeRepo := repoFactory.NewRouteRepository()

		route, err := routeRepo.FindRouteByID(ctx, routeID)
		if err != nil {
			return err
		}
		if _, err := routeRepo.FindFavorite(ctx, userID, routeID); err == nil {
			return repository.ErrFavoriteExists
		} else if !errors.Is(err, repository.ErrFavoriteNotFound) {
			return err
		}

		favorite = &entity.FavoriteRoute{UserID: userID, RouteID: routeID}
		if err := routeRepo.CreateFavorite(ctx, favorite); err != nil {
			return err
		}
		favorite.Route = route

		return nil
	})

	switch {
	case err == nil:
		return favorite, nil
	case errors.Is(err, repository.ErrRouteNotFound):
		return nil, domainerrors.ErrRouteNotFound
	case errors.Is(err, repository.ErrFavoriteExists):
		return nil, domainerrors.ErrFavoriteExists
	default:
		return nil, errors.Wrap(err, "failed to add favorite route")
	}
}

func (srv *transportService) RemoveFavorite(ctx context.Context, userID, routeID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewRouteRepository().DeleteFavorite(ctx, userID, routeID)
	})
	if errors.Is(err, repository.ErrFavoriteNotFound) {
		return domainerrors.ErrFavoriteNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to remove favorite route")
	}

	return nil
}

// NearbyStops returns stops inside the latitude/longitude box around the point, ordered by name.
func (srv *transportService) NearbyStops(ctx context.Context, input *usecase.NearbyStopsInput) ([]*entity.BusStop, error) {
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("latitude or longitude out of range")
	}

	radius := input.Radius
	if radius <= 0 {
		radius = defaultNearbyRadiusKm
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	box := boundingBox(input.Latitude, input.Longitude, radius)

	var stops []*entity.BusStop
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		stops, err = repoFactory.NewTransportRepository().ListStopsWithin(ctx, box, limit)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list nearby stops")
	}

	return stops, nil
}

func (srv *transportService) ActiveBuses(ctx context.Context, routeID *uuid.UUID) ([]*entity.Bus, error) {
	var buses []*entity.Bus
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		buses, err = repoFactory.NewTransportRepository().ListActiveBuses(ctx, routeID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active buses")
	}

	return buses, nil
}

// boundingBox approximates a radius in kilometers as degree offsets.
func boundingBox(lat, lon, radiusKm float64) repository.BoundingBox {
	latDelta := radiusKm / kmPerDegreeLatitude

	lonDelta := 180.0
	if cos := math.Cos(lat * math.Pi / 180); cos > 1e-6 {
		lonDelta = math.Min(radiusKm/(kmPerDegreeLatitude*cos), 180)
	}

	return repository.BoundingBox{
		MinLatitude:  math.Max(lat-latDelta, -90),
		MaxLatitude:  math.Min(lat+latDelta, 90),
		MinLongitude: lon - lonDelta,
		MaxLongitude: lon + lonDelta,
	}
}
