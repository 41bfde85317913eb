package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a user notification.
type NotificationType string

const (
	NotificationTypeInfo  NotificationType = "info"
	NotificationTypeAlert NotificationType = "alert"
)

// Notification is a message addressed to a single user.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
