package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationWarning NotificationKind = "warning"
	NotificationInfo    NotificationKind = "info"
)

type Notification struct {
	ID          uuid.UUID        `json:"id"`
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title,omitempty"`
	Message     string           `json:"message"`
	Duration    time.Duration    `json:"duration"`
	Dismissible bool             `json:"dismissible"`
}

// Persistent reports whether the notification stays until dismissed.
func (n Notification) Persistent() bool {
	return n.Duration == 0
}
