package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationModel mirrors the 'notifications' table.
type NotificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_created"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Message   string    `gorm:"type:text;not null"`
	Type      string    `gorm:"type:varchar(20);not null;default:info"`
	IsRead    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index:idx_notifications_user_created,sort:desc"`
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not.
func (m *NotificationModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// SOSRequestModel mirrors the 'sos_requests' table.
type SOSRequestModel struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                   uuid.UUID `gorm:"type:uuid;not null;index"`
	Latitude                 float64   `gorm:"not null"`
	Longitude                float64   `gorm:"not null"`
	Message                  string    `gorm:"type:text"`
	ContactEmergencyServices bool      `gorm:"not null;default:false"`
	Status                   string    `gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName explicitly sets the table name for GORM.
func (SOSRequestModel) TableName() string {
	return "sos_requests"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not.
func (m *SOSRequestModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// All lists every model for schema migration.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&RouteModel{},
		&FavoriteRouteModel{},
		&BusStopModel{},
		&BusModel{},
		&NotificationModel{},
		&SOSRequestModel{},
	}
}
