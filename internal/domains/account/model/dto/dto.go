package dto

import (
	"github.com/google/uuid"

	"venus/infras/jwt"
	"venus/internal/domains/account/model"
	gDto "venus/shared/dto"
	gModel "venus/shared/model"
	"venus/shared/timezone"
)

type ClientProfileRequest struct {
	Surname    string `json:"surname"`
	Phone      string `json:"phone"`
	NationalID string `json:"nationalId"`
}

func (c *ClientProfileRequest) ToModel() model.ClientProfile {
	return model.ClientProfile{
		Surname:    c.Surname,
		Phone:      c.Phone,
		NationalID: c.NationalID,
	}
}

type HotelProfileRequest struct {
	Phone                  string   `json:"phone"`
	OwnerNationalID        string   `json:"ownerNationalId"`
	BusinessName           string   `json:"businessName"           validate:"required,max=200"`
	Address                string   `json:"address"`
	Neighborhood           string   `json:"neighborhood"`
	City                   string   `json:"city"`
	PostalCode             string   `json:"postalCode"`
	BusinessRegistrationID string   `json:"businessRegistrationId"`
	RoomCount              int      `json:"roomCount"              validate:"gte=0"`
	Category               string   `json:"category"`
	Amenities              []string `json:"amenities"`
	Description            string   `json:"description"`
	BasePricePerNight      *float64 `json:"basePricePerNight"      validate:"omitempty,gte=0"`
	Images                 []string `json:"images"`
	MapsURL                string   `json:"mapsUrl"                validate:"omitempty,url"`
	CheckInTime            string   `json:"checkInTime"            validate:"omitempty,hhmm"`
	CheckOutTime           string   `json:"checkOutTime"           validate:"omitempty,hhmm"`
	CancellationPolicy     string   `json:"cancellationPolicy"`
}

func (h *HotelProfileRequest) ToModel() model.HotelProfile {
	return model.HotelProfile{
		Phone:                  h.Phone,
		OwnerNationalID:        h.OwnerNationalID,
		BusinessName:           h.BusinessName,
		Address:                h.Address,
		Neighborhood:           h.Neighborhood,
		City:                   h.City,
		PostalCode:             h.PostalCode,
		BusinessRegistrationID: h.BusinessRegistrationID,
		RoomCount:              h.RoomCount,
		Category:               h.Category,
		Amenities:              h.Amenities,
		Description:            h.Description,
		BasePricePerNight:      h.BasePricePerNight,
		Images:                 h.Images,
		MapsURL:                h.MapsURL,
		CheckInTime:            h.CheckInTime,
		CheckOutTime:           h.CheckOutTime,
		CancellationPolicy:     h.CancellationPolicy,
	}
}

type RegisterRequest struct {
	Email    string                `json:"email"    validate:"required,email"`
	Password string                `json:"password" validate:"required,max=72"`
	Name     string                `json:"name"     validate:"required,max=200"`
	Role     string                `json:"role"     validate:"required,oneof=CLIENT HOTEL"`
	Client   *ClientProfileRequest `json:"client"   validate:"required_if=Role CLIENT"`
	Hotel    *HotelProfileRequest  `json:"hotel"    validate:"required_if=Role HOTEL"`
}

// CheckProfile rejects a role outside CLIENT and HOTEL and a payload that
// does not match the role. ToModel expects a request that passed it.
func (r *RegisterRequest) CheckProfile() error {
	switch r.Role {
	case model.RoleClient:
		if r.Client == nil {
			return model.ErrProfileMismatch
		}
	case model.RoleHotel:
		if r.Hotel == nil {
			return model.ErrProfileMismatch
		}
	default:
		return model.ErrUnknownRole
	}

	return nil
}

// ToModel builds the variant selected by Role and drops the other payload.
func (r *RegisterRequest) ToModel(hashedPassword string) model.User {
	meta := gModel.NewMetadata(timezone.Now(), r.Email)

	if r.Role == model.RoleHotel {
		return model.NewHotel(uuid.NewString(), r.Email, r.Name, hashedPassword, r.Hotel.ToModel(), meta)
	}

	return model.NewClient(uuid.NewString(), r.Email, r.Name, hashedPassword, r.Client.ToModel(), meta)
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	SessionID    string       `json:"sessionId"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type UpdateHotelRequest struct {
	Name  string              `json:"name"  validate:"required,max=200"`
	Hotel HotelProfileRequest `json:"hotel" validate:"required"`
}

// UserResponse is the public projection of a user. It has no credential
// field.
type UserResponse struct {
	ID     string               `json:"id"`
	Email  string               `json:"email"`
	Name   string               `json:"name"`
	Role   string               `json:"role"`
	Client *model.ClientProfile `json:"client,omitempty"`
	Hotel  *model.HotelProfile  `json:"hotel,omitempty"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(user model.User) {
	u.ID = user.ID
	u.Email = user.Email
	u.Name = user.Name
	u.Role = user.Role
	u.Client = nil
	u.Hotel = nil

	if user.Client != nil {
		profile := *user.Client
		u.Client = &profile
	}

	if user.Hotel != nil {
		profile := *user.Hotel
		u.Hotel = &profile
	}

	u.Metadata.FromModel(user.Metadata)
}

func FromModels(users []model.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, user := range users {
		res[i].FromModel(user)
	}

	return res
}
