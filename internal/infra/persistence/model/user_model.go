// Package model holds the GORM persistence models. They never leave the infra layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
// Email is unique; the (oauth_provider, oauth_id) pair is unique when both are present.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          *string   `gorm:"type:varchar(100)"`
	Phone         *string   `gorm:"type:varchar(20)"`
	PasswordHash  *string   `gorm:"type:varchar(255)"`
	OAuthProvider *string   `gorm:"column:oauth_provider;type:varchar(50);uniqueIndex:idx_users_oauth_identity"`
	OAuthID       *string   `gorm:"column:oauth_id;type:varchar(255);uniqueIndex:idx_users_oauth_identity"`
	IsVerified    bool      `gorm:"not null;default:false"`
	IsActive      bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

func assignID(id *uuid.UUID) error {
	if *id != uuid.Nil {
		return nil
	}

	generated, err := uuid.NewV7()
	if err != nil {
		return err
	}
	*id = generated

	return nil
}

// NullableString maps an empty string to NULL.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// StringValue maps NULL to an empty string.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
