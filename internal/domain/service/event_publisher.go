package service

import (
	"context"
)

// SOSAlertEvent is published after an SOS request is recorded.
type SOSAlertEvent struct {
	RequestID                string  `json:"request_id,omitempty"` // For distributed tracing
	SOSID                    string  `json:"sos_id"`
	UserID                   string  `json:"user_id"`
	Latitude                 float64 `json:"latitude"`
	Longitude                float64 `json:"longitude"`
	Message                  string  `json:"message,omitempty"`
	ContactEmergencyServices bool    `json:"contact_emergency_services"`
	CreatedAt                string  `json:"created_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishSOSAlert publishes an SOS alert for asynchronous dispatch
	PublishSOSAlert(ctx context.Context, event *SOSAlertEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
