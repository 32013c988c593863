package model

import (
	"net/http"
	"slices"
	"time"

	"venus/shared/failure"
	"venus/shared/model"
)

const EntityName = "reservation"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// transitions lists the statuses reachable from each status. COMPLETED and
// CANCELLED are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

var (
	ErrInvalidTransition = &failure.Failure{Code: http.StatusUnprocessableEntity, Message: "reservation cannot move to the requested status"}
	ErrRoomUnavailable   = &failure.Failure{Code: http.StatusUnprocessableEntity, Message: "room is not available"}
	ErrNotParticipant    = &failure.Failure{Code: http.StatusForbidden, Message: "reservation belongs to someone else"}
	ErrClientOnlyCancel  = &failure.Failure{Code: http.StatusForbidden, Message: "clients may only cancel a reservation"}
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

type StatusChange struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
	By     string    `json:"by,omitempty"`
}

// Reservation carries the hotel, client and room names as they were when it
// was made.
type Reservation struct {
	ID            string         `json:"id"`
	HotelID       string         `json:"hotelId"`
	HotelName     string         `json:"hotelName"`
	HotelImage    string         `json:"hotelImage"`
	ClientID      string         `json:"clientId"`
	ClientName    string         `json:"clientName"`
	RoomID        string         `json:"roomId,omitempty"`
	RoomName      string         `json:"roomName"`
	CheckIn       string         `json:"checkIn"`
	CheckOut      string         `json:"checkOut"`
	TotalPrice    float64        `json:"totalPrice"`
	Status        Status         `json:"status"`
	StatusHistory []StatusChange `json:"statusHistory,omitempty"`
	model.Metadata
}

// MoveTo sets the status and records the change.
func (r *Reservation) MoveTo(status Status, at time.Time, by string) {
	r.Status = status
	r.StatusHistory = append(r.StatusHistory, StatusChange{Status: status, At: at, By: by})
	r.Touch(at, by)
}
