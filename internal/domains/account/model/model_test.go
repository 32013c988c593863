package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"venus/internal/domains/account/model"
	gModel "venus/shared/model"
)

func TestUserVariants(t *testing.T) {
	client := model.NewClient("c1", "joao@venus.com", "João", "hash", model.ClientProfile{Surname: "Silva"}, gModel.Metadata{})
	hotel := model.NewHotel("h1", "hotel@venus.com", "Carlos", "hash", model.HotelProfile{BusinessName: "Grand Vênus Resort", Images: []string{"a.jpg", "b.jpg"}}, gModel.Metadata{})

	assert.True(t, client.Valid())
	assert.True(t, client.IsClient())
	assert.False(t, client.IsHotel())
	assert.Empty(t, client.DisplayImage())

	assert.True(t, hotel.Valid())
	assert.True(t, hotel.IsHotel())
	assert.Equal(t, "a.jpg", hotel.DisplayImage())
	assert.NotNil(t, hotel.Hotel.Amenities)

	mixed := hotel
	mixed.Client = &model.ClientProfile{}
	assert.False(t, mixed.Valid())

	unknown := client
	unknown.Role = "ADMIN"
	assert.False(t, unknown.Valid())
}
