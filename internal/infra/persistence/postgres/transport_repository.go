package postgres

import (
	"context"

	"margdarshak/internal/domain/entity"
	domainerrors "margdarshak/internal/domain/errors"
	"margdarshak/internal/domain/repository"
	"margdarshak/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transportRepository struct {
	db *gorm.DB
}

// NewTransportRepository is the constructor for transportRepository.
func NewTransportRepository(db *gorm.DB) repository.TransportRepository {
	return &transportRepository{db: db}
}

func (repo *transportRepository) ListStopsWithin(ctx context.Context, box repository.BoundingBox, limit int) ([]*entity.BusStop, error) {
	var stopMs []model.BusStopModel
	err := repo.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", box.MinLatitude, box.MaxLatitude).
		Where("longitude BETWEEN ? AND ?", box.MinLongitude, box.MaxLongitude).
		Order("name").
		Limit(limit).
		Find(&stopMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list bus stops")
	}

	stops := make([]*entity.BusStop, 0, len(stopMs))
	for _, s := range stopMs {
		stops = append(stops, &entity.BusStop{
			ID:        s.ID,
			Name:      s.Name,
			Code:      s.Code,
			Location:  entity.Location{Latitude: s.Latitude, Longitude: s.Longitude},
			CreatedAt: s.CreatedAt,
		})
	}

	return stops, nil
}

func (repo *transportRepository) ListActiveBuses(ctx context.Context, routeID *uuid.UUID) ([]*entity.Bus, error) {
	query := repo.db.WithContext(ctx).Where("is_active = ?", true)
	if routeID != nil {
		query = query.Where("route_id = ?", *routeID)
	}

	var busMs []model.BusModel
	if err := query.Order("number").Find(&busMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list active buses")
	}

	buses := make([]*entity.Bus, 0, len(busMs))
	for _, b := range busMs {
		bus := &entity.Bus{
			ID:        b.ID,
			Number:    b.Number,
			RouteID:   b.RouteID,
			IsActive:  b.IsActive,
			UpdatedAt: b.UpdatedAt,
		}
		if b.CurrentLatitude != nil && b.CurrentLongitude != nil {
			bus.CurrentLocation = &entity.Location{Latitude: *b.CurrentLatitude, Longitude: *b.CurrentLongitude}
		}
		buses = append(buses, bus)
	}

	return buses, nil
}
