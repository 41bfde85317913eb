package handler

import (
	"log/slog"
	"net/http"

	"margdarshak/internal/delivery/api/middleware"
	"margdarshak/internal/delivery/api/response"
	"margdarshak/internal/delivery/api/validator"
	"margdarshak/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SOSHandlerParams holds dependencies for SOSHandler, injected by Fx.
type SOSHandlerParams struct {
	fx.In

	SOSUC  usecase.SOSUsecase
	Logger *slog.Logger
}

// SOSHandler serves emergency requests.
type SOSHandler struct {
	sosUC  usecase.SOSUsecase
	logger *slog.Logger
}

// NewSOSHandler is the constructor for SOSHandler
func NewSOSHandler(params SOSHandlerParams) *SOSHandler {
	return &SOSHandler{
		sosUC:  params.SOSUC,
		logger: params.Logger,
	}
}

// CreateSOSRequest represents the request body for raising an SOS
type CreateSOSRequest struct {
	Location                 LocationRequest `json:"location" validate:"required"`
	Message                  string          `json:"message"`
	ContactEmergencyServices bool            `json:"contact_emergency_services"`
}

// CreateSOS handles raising an emergency request
func (h *SOSHandler) CreateSOS(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req CreateSOSRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid SOS input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c, "VALIDATION_FAILED", "Input validation failed", validator.FieldErrors(err))
	}

	sos, err := h.sosUC.CreateSOS(c.Request().Context(), userID, &usecase.CreateSOSInput{
		Location:                 req.Location.toEntity(),
		Message:                  req.Message,
		ContactEmergencyServices: req.ContactEmergencyServices,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, sos)
}

// GetSOS handles fetching one of the current user's SOS requests
func (h *SOSHandler) GetSOS(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	sosID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid SOS ID")
	}

	sos, err := h.sosUC.GetSOS(c.Request().Context(), userID, sosID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, sos)
}
