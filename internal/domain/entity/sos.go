package entity

import (
	"time"

	"github.com/google/uuid"
)

// SOSStatus tracks the handling of an emergency request.
type SOSStatus string

const (
	SOSStatusPending  SOSStatus = "pending"
	SOSStatusResolved SOSStatus = "resolved"
)

// SOSRequest is an emergency alert raised by a user.
type SOSRequest struct {
	ID                       uuid.UUID `json:"id"`
	UserID                   uuid.UUID `json:"user_id"`
	Location                 Location  `json:"location"`
	Message                  string    `json:"message"`
	ContactEmergencyServices bool      `json:"contact_emergency_services"`
	Status                   SOSStatus `json:"status"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}
