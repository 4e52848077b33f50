package model

import "time"

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// AllNotificationTypes lists notification types in display order.
var AllNotificationTypes = []NotificationType{
	NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError,
}

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool { return contains(AllNotificationTypes, t) }

// Notification is an entry in the notification panel.
type Notification struct {
	ID        string           `json:"id" validate:"required"`
	Type      NotificationType `json:"type" validate:"required,oneof=info success warning error"`
	Title     string           `json:"title" validate:"required"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp" validate:"required"`
	Read      bool             `json:"read"`
}

// ActivityType classifies an activity log entry.
type ActivityType string

const (
	ActivityProject ActivityType = "project"
	ActivityPayment ActivityType = "payment"
	ActivityClient  ActivityType = "client"
	ActivityTask    ActivityType = "task"
)

// AllActivityTypes lists activity types in display order.
var AllActivityTypes = []ActivityType{
	ActivityProject, ActivityPayment, ActivityClient, ActivityTask,
}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool { return contains(AllActivityTypes, t) }

// Activity is an append-only, display-only log entry.
type Activity struct {
	ID        string       `json:"id" validate:"required"`
	Type      ActivityType `json:"type" validate:"required,oneof=project payment client task"`
	Message   string       `json:"message" validate:"required"`
	Timestamp time.Time    `json:"timestamp" validate:"required"`
	Icon      string       `json:"icon"`
}
