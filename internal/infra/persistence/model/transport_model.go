package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RouteModel mirrors the 'routes' table.
type RouteModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(100)"`
	Description    string    `gorm:"type:text"`
	StartLatitude  float64   `gorm:"not null"`
	StartLongitude float64   `gorm:"not null"`
	EndLatitude    float64   `gorm:"not null"`
	EndLongitude   float64   `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (RouteModel) TableName() string {
	return "routes"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not.
func (m *RouteModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// FavoriteRouteModel mirrors the 'favorite_routes' table.
type FavoriteRouteModel struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_routes_user_route"`
	RouteID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_routes_user_route"`
	Route     *RouteModel `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FavoriteRouteModel) TableName() string {
	return "favorite_routes"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not.
func (m *FavoriteRouteModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// BusStopModel mirrors the 'bus_stops' table.
type BusStopModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Code      string    `gorm:"type:varchar(20);uniqueIndex"`
	Latitude  float64   `gorm:"not null;index:idx_bus_stops_position"`
	Longitude float64   `gorm:"not null;index:idx_bus_stops_position"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BusStopModel) TableName() string {
	return "bus_stops"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not.
func (m *BusStopModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// BusModel mirrors the 'buses' table.
type BusModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number           string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	RouteID          *uuid.UUID `gorm:"type:uuid;index"`
	CurrentLatitude  *float64
	CurrentLongitude *float64
	IsActive         bool `gorm:"not null;default:true;index"`
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (BusModel) TableName() string {
	return "buses"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not.
func (m *BusModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
