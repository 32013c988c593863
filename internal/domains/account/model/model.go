package model

import (
	"venus/shared/constant"
	"venus/shared/model"
)

const (
	EntityName = "user"

	RoleClient = constant.RoleClient
	RoleHotel  = constant.RoleHotel
)

type ClientProfile struct {
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	NationalID string `json:"nationalId"`
}

type HotelProfile struct {
	Phone                  string   `json:"phone"`
	OwnerNationalID        string   `json:"ownerNationalId"`
	BusinessName           string   `json:"businessName"`
	Address                string   `json:"address"`
	Neighborhood           string   `json:"neighborhood"`
	City                   string   `json:"city"`
	PostalCode             string   `json:"postalCode"`
	BusinessRegistrationID string   `json:"businessRegistrationId"`
	RoomCount              int      `json:"roomCount"`
	Category               string   `json:"category"`
	Amenities              []string `json:"amenities"`
	Description            string   `json:"description,omitempty"`
	BasePricePerNight      *float64 `json:"basePricePerNight,omitempty"`
	Images                 []string `json:"images"`
	MapsURL                string   `json:"mapsUrl,omitempty"`
	CheckInTime            string   `json:"checkInTime,omitempty"`
	CheckOutTime           string   `json:"checkOutTime,omitempty"`
	CancellationPolicy     string   `json:"cancellationPolicy,omitempty"`
}

// User is a client or a hotel. Exactly one of Client and Hotel is set and it
// matches Role.
type User struct {
	ID         string         `json:"id"`
	Email      string         `json:"email"`
	Name       string         `json:"name"`
	Role       string         `json:"role"`
	Credential string         `json:"credential"`
	Client     *ClientProfile `json:"client,omitempty"`
	Hotel      *HotelProfile  `json:"hotel,omitempty"`
	model.Metadata
}

func NewClient(id, email, name, credential string, profile ClientProfile, meta model.Metadata) User {
	return User{
		ID:         id,
		Email:      email,
		Name:       name,
		Role:       RoleClient,
		Credential: credential,
		Client:     &profile,
		Metadata:   meta,
	}
}

func NewHotel(id, email, name, credential string, profile HotelProfile, meta model.Metadata) User {
	if profile.Amenities == nil {
		profile.Amenities = []string{}
	}

	if profile.Images == nil {
		profile.Images = []string{}
	}

	return User{
		ID:         id,
		Email:      email,
		Name:       name,
		Role:       RoleHotel,
		Credential: credential,
		Hotel:      &profile,
		Metadata:   meta,
	}
}

func (u User) IsHotel() bool {
	return u.Role == RoleHotel && u.Hotel != nil
}

func (u User) IsClient() bool {
	return u.Role == RoleClient && u.Client != nil
}

// Valid reports whether the payload matches the role.
func (u User) Valid() bool {
	switch u.Role {
	case RoleClient:
		return u.Client != nil && u.Hotel == nil
	case RoleHotel:
		return u.Hotel != nil && u.Client == nil
	default:
		return false
	}
}

// DisplayImage is the first hotel image, empty for clients.
func (u User) DisplayImage() string {
	if u.Hotel == nil || len(u.Hotel.Images) == 0 {
		return ""
	}

	return u.Hotel.Images[0]
}
