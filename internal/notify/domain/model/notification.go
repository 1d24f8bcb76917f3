package model

import "time"

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a transient message for the operator (a "toast").
type Notification struct {
	ID        string    `json:"id,omitempty"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	UserID    string    `json:"userId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New builds a notification stamped with the current time.
func New(level Level, message, userID string) Notification {
	return Notification{
		Level:     level,
		Message:   message,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}
