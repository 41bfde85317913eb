package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"margdarshak/internal/delivery/api/middleware"
	"margdarshak/internal/delivery/api/response"
	"margdarshak/internal/delivery/api/validator"
	"margdarshak/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TransportHandlerParams holds dependencies for TransportHandler, injected by Fx.
type TransportHandlerParams struct {
	fx.In

	TransportUC usecase.TransportUsecase
	Logger      *slog.Logger
}

// TransportHandler serves routes, favorites, stops and buses.
type TransportHandler struct {
	transportUC usecase.TransportUsecase
	logger      *slog.Logger
}

// NewTransportHandler is the constructor for TransportHandler
func NewTransportHandler(params TransportHandlerParams) *TransportHandler {
	return &TransportHandler{
		transportUC: params.TransportUC,
		logger:      params.Logger,
	}
}

// CreateRouteRequest represents the request body for saving a route
type CreateRouteRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	StartLocation LocationRequest `json:"start_location" validate:"required"`
	EndLocation   LocationRequest `json:"end_location" validate:"required"`
}

// AddFavoriteRequest represents the request body for favoring a route
type AddFavoriteRequest struct {
	RouteID uuid.UUID `json:"route_id" validate:"required"`
}

// ListRoutes handles listing routes with skip/limit paging
func (h *TransportHandler) ListRoutes(c echo.Context) error {
	routes, err := h.transportUC.ListRoutes(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, routes)
}

// CreateRoute handles saving a route for the current user
func (h *TransportHandler) CreateRoute(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateRouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Input validation failed", validator.FieldErrors(err))
	}

	route, err := h.transportUC.CreateRoute(c.Request().Context(), userID, &usecase.CreateRouteInput{
		Name:          req.Name,
		Description:   req.Description,
		StartLocation: req.StartLocation.toEntity(),
		EndLocation:   req.EndLocation.toEntity(),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, route)
}

// GetRoute handles fetching one route
func (h *TransportHandler) GetRoute(c echo.Context) error {
	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid route ID")
	}

	route, err := h.transportUC.GetRoute(c.Request().Context(), routeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, route)
}

// ListFavorites handles listing the current user's favorite routes
func (h *TransportHandler) ListFavorites(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	favorites, err := h.transportUC.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, favorites)
}

// AddFavorite handles favoring a route
func (h *TransportHandler) AddFavorite(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid favorite input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Input validation failed", validator.FieldErrors(err))
	}

	favorite, err := h.transportUC.AddFavorite(c.Request().Context(), userID, req.RouteID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, favorite)
}

// RemoveFavorite handles removing a route from the current user's favorites
func (h *TransportHandler) RemoveFavorite(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	routeID, err := uuid.Parse(c.Param("route_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid route ID")
	}

	if err := h.transportUC.RemoveFavorite(c.Request().Context(), userID, routeID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// NearbyStops handles listing stops around a coordinate
func (h *TransportHandler) NearbyStops(c echo.Context) error {
	latitude, errLat := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	longitude, errLng := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	if errLat != nil || errLng != nil {
		return response.BadRequest(c, "INVALID_INPUT", "latitude and longitude are required")
	}

	input := &usecase.NearbyStopsInput{
		Latitude:  latitude,
		Longitude: longitude,
	}
	if raw := c.QueryParam("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid radius")
		}
		input.Radius = radius
	}

	stops, err := h.transportUC.NearbyStops(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stops)
}

// ActiveBuses handles listing active buses, optionally on one route
func (h *TransportHandler) ActiveBuses(c echo.Context) error {
	var routeID *uuid.UUID
	if raw := c.QueryParam("route_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid route ID")
		}
		routeID = &parsed
	}

	buses, err := h.transportUC.ActiveBuses(c.Request().Context(), routeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, buses)
}
