package model

import "time"

const EntityName = "notification"

type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

type Notification struct {
	ID      string    `json:"id"`
	UserID  string    `json:"userId"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
	Type    Type      `json:"type"`
}
