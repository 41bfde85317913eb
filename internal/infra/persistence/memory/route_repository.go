package memory

import (
	"context"
	"slices"
	"time"

	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
)

type routeRepository struct {
	data *state
	now  func() time.Time
}

func (repo *routeRepository) ListRoutes(_ context.Context, p repository.Page) ([]*entity.Route, error) {
	routes := make([]*entity.Route, 0, len(repo.data.routes))
	for _, route := range repo.data.routes {
		routes = append(routes, &route)
	}
	slices.SortFunc(routes, func(a, b *entity.Route) int {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})

	return page(routes, p), nil
}

func (repo *routeRepository) FindRouteByID(_ context.Context, id uuid.UUID) (*entity.Route, error) {
	route, ok := repo.data.routes[id]
	if !ok {
		return nil, repository.ErrRouteNotFound
	}

	return &route, nil
}

func (repo *routeRepository) CreateRoute(_ context.Context, route *entity.Route) error {
	if route.ID == uuid.Nil {
		route.ID = newID()
	}
	now := repo.now()
	route.CreatedAt = now
	route.UpdatedAt = now
	repo.data.routes[route.ID] = *route

	return nil
}

func (repo *routeRepository) ListFavorites(_ context.Context, userID uuid.UUID) ([]*entity.FavoriteRoute, error) {
	favorites := make([]*entity.FavoriteRoute, 0)
	for _, favorite := range repo.data.favorites {
		if favorite.UserID == userID {
			favorites = append(favorites, repo.withRoute(favorite))
		}
	}
	slices.SortFunc(favorites, func(a, b *entity.FavoriteRoute) int {
		return newestFirst(a.CreatedAt, a.ID, b.CreatedAt, b.ID)
	})

	return favorites, nil
}

func (repo *routeRepository) FindFavorite(_ context.Context, userID, routeID uuid.UUID) (*entity.FavoriteRoute, error) {
	for _, favorite := range repo.data.favorites {
		if favorite.UserID == userID && favorite.RouteID == routeID {
			return repo.withRoute(favorite), nil
		}
	}

	return nil, repository.ErrFavoriteNotFound
}

func (repo *routeRepository) CreateFavorite(ctx context.Context, favorite *entity.FavoriteRoute) error {
	if _, ok := repo.data.routes[favorite.RouteID]; !ok {
		return repository.ErrRouteNotFound
	}
	if _, err := repo.FindFavorite(ctx, favorite.UserID, favorite.RouteID); err == nil {
		return repository.ErrFavoriteExists
	}

	if favorite.ID == uuid.Nil {
		favorite.ID = newID()
	}
	favorite.CreatedAt = repo.now()
	stored := *favorite
	stored.Route = nil
	repo.data.favorites[favorite.ID] = stored

	return nil
}

func (repo *routeRepository) DeleteFavorite(_ context.Context, userID, routeID uuid.UUID) error {
	for id, favorite := range repo.data.favorites {
		if favorite.UserID == userID && favorite.RouteID == routeID {
			delete(repo.data.favorites, id)

			return nil
		}
	}

	return repository.ErrFavoriteNotFound
}

func (repo *routeRepository) withRoute(favorite entity.FavoriteRoute) *entity.FavoriteRoute {
	if route, ok := repo.data.routes[favorite.RouteID]; ok {
		favorite.Route = &route
	}

	return &favorite
}
