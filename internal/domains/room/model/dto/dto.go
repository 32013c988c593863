package dto

import (
	"venus/internal/domains/room/model"
	gDto "venus/shared/dto"
	gModel "venus/shared/model"
	"venus/shared/timezone"
)

// SaveRoomRequest creates a room when ID is empty and replaces it otherwise.
// HotelID defaults to the calling hotel.
type SaveRoomRequest struct {
	ID          string   `json:"id"          validate:"omitempty,max=100"`
	HotelID     string   `json:"hotelId"     validate:"omitempty,max=100"`
	Name        string   `json:"name"        validate:"required,max=100"`
	Capacity    int      `json:"capacity"    validate:"gt=0"`
	Price       float64  `json:"price"       validate:"gte=0"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Images      []string `json:"images"`
	IsAvailable *bool    `json:"isAvailable"`
	Amenities   []string `json:"amenities"`
}

func (r *SaveRoomRequest) ToModel(user string) model.Room {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}

	images := r.Images
	if images == nil {
		images = []string{}
	}

	amenities := r.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return model.Room{
		ID:          r.ID,
		HotelID:     r.HotelID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Price:       r.Price,
		Description: r.Description,
		Images:      images,
		IsAvailable: available,
		Amenities:   amenities,
		Metadata:    gModel.NewMetadata(timezone.Now(), user),
	}
}

type RoomResponse struct {
	ID          string   `json:"id"`
	HotelID     string   `json:"hotelId"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	IsAvailable bool     `json:"isAvailable"`
	Amenities   []string `json:"amenities"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.ID = room.ID
	r.HotelID = room.HotelID
	r.Name = room.Name
	r.Capacity = room.Capacity
	r.Price = room.Price
	r.Description = room.Description
	r.Images = room.Images
	r.IsAvailable = room.IsAvailable
	r.Amenities = room.Amenities
	r.Metadata.FromModel(room.Metadata)

	if r.Images == nil {
		r.Images = []string{}
	}

	if r.Amenities == nil {
		r.Amenities = []string{}
	}
}

func FromModels(rooms []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		res[i].FromModel(room)
	}

	return res
}
