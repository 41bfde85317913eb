package impl

import (
	"context"
	"testing"

	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportService_RoutesAndFavorites(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	transport := NewTransportService(deps.txManager, newDiscardLogger())
	ctx := context.Background()
	userID := uuid.New()

	route, err := transport.CreateRoute(ctx, userID, &usecase.CreateRouteInput{
		Name:          "Home to work",
		StartLocation: entity.Location{Latitude: 12.97, Longitude: 77.59},
		EndLocation:   entity.Location{Latitude: 12.93, Longitude: 77.62},
	})
	require.NoError(t, err)
	assert.Equal(t, userID, route.UserID)

	got, err := transport.GetRoute(ctx, route.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home to work", got.Name)

	_, err = transport.GetRoute(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrRouteNotFound)

	routes, err := transport.ListRoutes(ctx, repository.Page{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, routes, 1)

	favorite, err := transport.AddFavorite(ctx, userID, route.ID)
	require.NoError(t, err)
	require.NotNil(t, favorite.Route)
	assert.Equal(t, route.ID, favorite.Route.ID)

	_, err = transport.AddFavorite(ctx, userID, route.ID)
	assert.ErrorIs(t, err, domainerrors.ErrFavoriteExists)

	_, err = transport.AddFavorite(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrRouteNotFound)

	favorites, err := transport.ListFavorites(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	others, err := transport.ListFavorites(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, transport.RemoveFavorite(ctx, userID, route.ID))
	assert.ErrorIs(t, transport.RemoveFavorite(ctx, userID, route.ID), domainerrors.ErrFavoriteNotFound)
}

func TestTransportService_NearbyStops(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	transport := NewTransportService(deps.txManager, newDiscardLogger())
	deps.store.SeedBusStops(
		entity.BusStop{Name: "Majestic", Location: entity.Location{Latitude: 12.9767, Longitude: 77.5713}},
		entity.BusStop{Name: "KR Market", Location: entity.Location{Latitude: 12.9634, Longitude: 77.5775}},
		entity.BusStop{Name: "Airport", Location: entity.Location{Latitude: 13.1986, Longitude: 77.7066}},
	)

	stops, err := transport.NearbyStops(context.Background(), &usecase.NearbyStopsInput{Latitude: 12.9716, Longitude: 77.5946, Radius: 3})
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, "KR Market", stops[0].Name)
	assert.Equal(t, "Majestic", stops[1].Name)

	// Default radius of one kilometer excludes both.
	stops, err = transport.NearbyStops(context.Background(), &usecase.NearbyStopsInput{Latitude: 12.9716, Longitude: 77.5946})
	require.NoError(t, err)
	assert.Empty(t, stops)

	_, err = transport.NearbyStops(context.Background(), &usecase.NearbyStopsInput{Latitude: 91})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestTransportService_ActiveBuses(t *testing.T) {
	deps := newTestDeps(t, newTestConfig())
	transport := NewTransportService(deps.txManager, newDiscardLogger())
	routeID := uuid.New()
	deps.store.SeedBuses(
		entity.Bus{Number: "500D", RouteID: &routeID, IsActive: true},
		entity.Bus{Number: "335E", IsActive: true},
		entity.Bus{Number: "V-500", RouteID: &routeID},
	)

	buses, err := transport.ActiveBuses(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, buses, 2)

	buses, err = transport.ActiveBuses(context.Background(), &routeID)
	require.NoError(t, err)
	require.Len(t, buses, 1)
	assert.Equal(t, "500D", buses[0].Number)
}

func TestBoundingBox(t *testing.T) {
	box := boundingBox(0, 0, 111.32)
	assert.InDelta(t, -1, box.MinLatitude, 1e-9)
	assert.InDelta(t, 1, box.MaxLatitude, 1e-9)
	assert.InDelta(t, 1, box.MaxLongitude, 1e-9)

	polar := boundingBox(90, 10, 5)
	assert.Equal(t, 90.0, polar.MaxLatitude)
	assert.Equal(t, -170.0, polar.MinLongitude)
}
