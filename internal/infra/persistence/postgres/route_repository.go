package postgres

import (
	"context"

	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type routeRepository struct {
	db *gorm.DB
}

// NewRouteRepository is the constructor for routeRepository.
func NewRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &routeRepository{db: db}
}

func (repo *routeRepository) ListRoutes(ctx context.Context, page repository.Page) ([]*entity.Route, error) {
	var routeMs []model.RouteModel
	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&routeMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list routes")
	}

	routes := make([]*entity.Route, 0, len(routeMs))
	for i := range routeMs {
		routes = append(routes, toRouteDomain(&routeMs[i]))
	}

	return routes, nil
}

func (repo *routeRepository) FindRouteByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	var routeM model.RouteModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&routeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRouteNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find route")
	}

	return toRouteDomain(&routeM), nil
}

func (repo *routeRepository) CreateRoute(ctx context.Context, route *entity.Route) error {
	routeM := fromRouteDomain(route)
	if err := repo.db.WithContext(ctx).Create(routeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create route")
	}

	route.ID = routeM.ID
	route.CreatedAt = routeM.CreatedAt
	route.UpdatedAt = routeM.UpdatedAt

	return nil
}

func (repo *routeRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*entity.FavoriteRoute, error) {
	var favoriteMs []model.FavoriteRouteModel
	err := repo.db.WithContext(ctx).
		Preload("Route").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favoriteMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list favorite routes")
	}

	favorites := make([]*entity.FavoriteRoute, 0, len(favoriteMs))
	for i := range favoriteMs {
		favorites = append(favorites, toFavoriteDomain(&favoriteMs[i]))
	}

	return favorites, nil
}

func (repo *routeRepository) FindFavorite(ctx context.Context, userID, routeID uuid.UUID) (*entity.FavoriteRoute, error) {
	var favoriteM model.FavoriteRouteModel
	err := repo.db.WithContext(ctx).
		Preload("Route").
		Where("user_id = ? AND route_id = ?", userID, routeID).
		First(&favoriteM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFavoriteNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find favorite route")
	}

	return toFavoriteDomain(&favoriteM), nil
}

func (repo *routeRepository) CreateFavorite(ctx context.Context, favorite *entity.FavoriteRoute) error {
	favoriteM := &model.FavoriteRouteModel{
		ID:      favorite.ID,
		UserID:  favorite.UserID,
		RouteID: favorite.RouteID,
	}
	if err := repo.db.WithContext(ctx).Omit("Route").Create(favoriteM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrFavoriteExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrRouteNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create favorite route")
	}

	favorite.ID = favoriteM.ID
	favorite.CreatedAt = favoriteM.CreatedAt

	return nil
}

func (repo *routeRepository) DeleteFavorite(ctx context.Context, userID, routeID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND route_id = ?", userID, routeID).
		Delete(&model.FavoriteRouteModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete favorite route")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFavoriteNotFound
	}

	return nil
}

func toRouteDomain(data *model.RouteModel) *entity.Route {
	if data == nil {
		return nil
	}

	return &entity.Route{
		ID:            data.ID,
		UserID:        data.UserID,
		Name:          data.Name,
		Description:   data.Description,
		StartLocation: entity.Location{Latitude: data.StartLatitude, Longitude: data.StartLongitude},
		EndLocation:   entity.Location{Latitude: data.EndLatitude, Longitude: data.EndLongitude},
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromRouteDomain(data *entity.Route) *model.RouteModel {
	return &model.RouteModel{
		ID:             data.ID,
		UserID:         data.UserID,
		Name:           data.Name,
		Description:    data.Description,
		StartLatitude:  data.StartLocation.Latitude,
		StartLongitude: data.StartLocation.Longitude,
		EndLatitude:    data.EndLocation.Latitude,
		EndLongitude:   data.EndLocation.Longitude,
	}
}

func toFavoriteDomain(data *model.FavoriteRouteModel) *entity.FavoriteRoute {
	return &entity.FavoriteRoute{
		ID:        data.ID,
		UserID:    data.UserID,
		RouteID:   data.RouteID,
		Route:     toRouteDomain(data.Route),
		CreatedAt: data.CreatedAt,
	}
}
