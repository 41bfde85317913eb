package repository

import (
	"context"

	"margdarshak/internal/domain/entity"

	"github.com/google/uuid"
)

// BoundingBox is an inclusive latitude/longitude range.
type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// Contains reports whether loc lies inside the box.
func (b BoundingBox) Contains(loc entity.Location) bool {
	return loc.Latitude >= b.MinLatitude && loc.Latitude <= b.MaxLatitude &&
		loc.Longitude >= b.MinLongitude && loc.Longitude <= b.MaxLongitude
}

// TransportRepository reads bus stops and buses.
type TransportRepository interface {
	ListStopsWithin(ctx context.Context, box BoundingBox, limit int) ([]*entity.BusStop, error)
	// ListActiveBuses returns active buses, restricted to routeID when it is not nil.
	ListActiveBuses(ctx context.Context, routeID *uuid.UUID) ([]*entity.Bus, error)
}
