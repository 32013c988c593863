// Package events carries domain events from the stores to their
// subscribers: the notification feed in process and, when enabled, Kafka.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"
)

type Kind string

const (
	AccountRegistered        Kind = "account.registered"
	ReservationCreated       Kind = "reservation.created"
	ReservationStatusChanged Kind = "reservation.status_changed"
)

// Event is a flat record of something that happened. Fields not relevant to
// the kind are left empty.
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
	ActorID    string    `json:"actorId,omitempty"`
	ActorRole  string    `json:"actorRole,omitempty"`

	UserID   string `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
	UserRole string `json:"userRole,omitempty"`

	ReservationID string `json:"reservationId,omitempty"`
	HotelID       string `json:"hotelId,omitempty"`
	HotelName     string `json:"hotelName,omitempty"`
	ClientID      string `json:"clientId,omitempty"`
	ClientName    string `json:"clientName,omitempty"`
	RoomName      string `json:"roomName,omitempty"`
	CheckIn       string `json:"checkIn,omitempty"`
	CheckOut      string `json:"checkOut,omitempty"`
	FromStatus    string `json:"fromStatus,omitempty"`
	Status        string `json:"status,omitempty"`
}

// Key groups events of one aggregate on the same Kafka partition.
func (e Event) Key() string {
	if e.ReservationID != "" {
		return e.ReservationID
	}

	return e.UserID
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type Handler func(ctx context.Context, event Event) error
