package memory

import (
	"context"
	"slices"
	"strings"

	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
)

type transportRepository struct {
	data *state
}

func (repo *transportRepository) ListStopsWithin(_ context.Context, box repository.BoundingBox, limit int) ([]*entity.BusStop, error) {
	stops := make([]*entity.BusStop, 0)
	for _, stop := range repo.data.stops {
		if box.Contains(stop.Location) {
			stops = append(stops, &stop)
		}
	}
	slices.SortFunc(stops, func(a, b *entity.BusStop) int {
		return strings.Compare(a.Name, b.Name)
	})

	return page(stops, repository.Page{Limit: limit}), nil
}

func (repo *transportRepository) ListActiveBuses(_ context.Context, routeID *uuid.UUID) ([]*entity.Bus, error) {
	buses := make([]*entity.Bus, 0)
	for _, bus := range repo.data.buses {
		if !bus.IsActive {
			continue
		}
		if routeID != nil && (bus.RouteID == nil || *bus.RouteID != *routeID) {
			continue
		}
		buses = append(buses, &bus)
	}
	slices.SortFunc(buses, func(a, b *entity.Bus) int {
		return strings.Compare(a.Number, b.Number)
	})

	return buses, nil
}
