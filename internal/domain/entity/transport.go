package entity

import (
	"time"

	"github.com/google/uuid"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Route is a saved origin/destination pair created by a user.
type Route struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StartLocation Location  `json:"start_location"`
	EndLocation   Location  `json:"end_location"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FavoriteRoute marks a route as a favorite of a user. A user favors a route at most once.
type FavoriteRoute struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	RouteID   uuid.UUID `json:"route_id"`
	Route     *Route    `json:"route,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BusStop is a named boarding point.
type BusStop struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Location  Location  `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// Bus is a vehicle, optionally assigned to a route.
type Bus struct {
	ID              uuid.UUID  `json:"id"`
	Number          string     `json:"number"`
	RouteID         *uuid.UUID `json:"route_id,omitempty"`
	CurrentLocation *Location  `json:"current_location,omitempty"`
	IsActive        bool       `json:"is_active"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
