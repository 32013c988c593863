package model

import (
	"net/http"

	"venus/shared/failure"
	"venus/shared/model"
)

const EntityName = "room"

var ErrNotOwner = &failure.Failure{Code: http.StatusForbidden, Message: "room belongs to another hotel"}

// Room is owned by exactly one hotel.
type Room struct {
	ID          string   `json:"id"`
	HotelID     string   `json:"hotelId"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	IsAvailable bool     `json:"isAvailable"`
	Amenities   []string `json:"amenities"`
	model.Metadata
}

// Image is the first room image, empty when there is none.
func (r Room) Image() string {
	if len(r.Images) == 0 {
		return ""
	}

	return r.Images[0]
}
