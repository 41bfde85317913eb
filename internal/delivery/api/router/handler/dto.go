package handler

import (
	"strconv"
	"time"

	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 100
)

// UserResponse is the public view of a user. The password hash never leaves the server.
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	OAuthProvider string    `json:"oauth_provider,omitempty"`
	IsVerified    bool      `json:"is_verified"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func newUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Phone:         user.Phone,
		OAuthProvider: string(user.OAuthProvider),
		IsVerified:    user.IsVerified,
		IsActive:      user.IsActive,
		CreatedAt:     user.CreatedAt,
	}
}

// LocationRequest is a coordinate pair in a request body.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func (r *LocationRequest) toEntity() entity.Location {
	return entity.Location{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

// pageFromQuery reads skip/limit. Out of range values fall back to the defaults.
func pageFromQuery(c echo.Context) repository.Page {
	page := repository.Page{Limit: defaultPageLimit}

	if skip, err := strconv.Atoi(c.QueryParam("skip")); err == nil && skip > 0 {
		page.Offset = skip
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		page.Limit = min(limit, maxPageLimit)
	}

	return page
}
