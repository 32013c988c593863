package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venus/internal/domains/account/model"
	"venus/internal/domains/account/model/dto"
	gModel "venus/shared/model"
	"venus/shared/validator"
)

func TestRegisterRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name: "client",
			body: `{"email":"a@x.com","password":"abc","name":"Ana","role":"CLIENT","client":{"surname":"Souza"}}`,
		},
		{
			name: "hotel",
			body: `{"email":"h@x.com","password":"abc","name":"Carlos","role":"HOTEL","hotel":{"businessName":"Pousada","checkInTime":"14:00"}}`,
		},
		{
			name:    "hotel without payload",
			body:    `{"email":"h@x.com","password":"abc","name":"Carlos","role":"HOTEL"}`,
			message: "hotel is required",
		},
		{
			name:    "client without payload",
			body:    `{"email":"a@x.com","password":"abc","name":"Ana","role":"CLIENT"}`,
			message: "client is required",
		},
		{
			name:    "unknown role",
			body:    `{"email":"a@x.com","password":"abc","name":"Ana","role":"ADMIN"}`,
			message: "role must be one of CLIENT HOTEL",
		},
		{
			name:    "hotel with bad check-in time",
			body:    `{"email":"h@x.com","password":"abc","name":"Carlos","role":"HOTEL","hotel":{"businessName":"Pousada","checkInTime":"2pm"}}`,
			message: "checkInTime must be a time formatted as HH:MM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.RegisterRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := validator.ValidateStruct(&req)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestRegisterRequest_ToModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "h@x.com",
		Password: "abc",
		Name:     "Carlos",
		Role:     model.RoleHotel,
		Client:   &dto.ClientProfileRequest{Surname: "ignored"},
		Hotel:    &dto.HotelProfileRequest{BusinessName: "Pousada"},
	}

	user := req.ToModel("hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "hashed", user.Credential)
	assert.True(t, user.Valid())
	assert.Nil(t, user.Client)
	assert.Equal(t, "Pousada", user.Hotel.BusinessName)
}

func TestUserResponse_HasNoCredential(t *testing.T) {
	user := model.NewClient("c1", "a@x.com", "Ana", "secret-hash", model.ClientProfile{}, gModel.Metadata{})

	var res dto.UserResponse
	res.FromModel(user)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "credential")
	assert.NotContains(t, string(raw), "secret-hash")
	assert.Equal(t, "CLIENT", fields["role"])
}
