package models

import "time"

// NotificationLevel is the severity shown for a notification.
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyInfo    NotificationLevel = "info"
	NotifyWarning NotificationLevel = "warning"
	NotifyError   NotificationLevel = "error"
)

// Notification is a user-facing message emitted by a development action.
type Notification struct {
	ID        ULID              `json:"id"`
	Level     NotificationLevel `json:"level"`
	Event     DevelopmentEvent  `json:"event"`
	Key       string            `json:"key" doc:"Message catalog key"`
	Message   string            `json:"message"`
	Subject   string            `json:"subject,omitempty" doc:"File or theme the notification refers to"`
	Timestamp time.Time         `json:"timestamp"`
}
