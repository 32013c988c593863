package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"venus/shared/failure"
	"venus/shared/validator"
)

type stayRequest struct {
	GuestName string `json:"guestName" validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	CheckIn   string `json:"checkIn"   validate:"required,date"`
	Arrival   string `json:"arrival"   validate:"omitempty,hhmm"`
	Guests    int    `json:"guests"    validate:"gte=1,lte=10"`
	Role      string `json:"role"      validate:"oneof=CLIENT HOTEL"`
}

func validStay() stayRequest {
	return stayRequest{
		GuestName: "João Silva",
		Email:     "joao@venus.com",
		CheckIn:   "2024-06-10",
		Arrival:   "14:00",
		Guests:    2,
		Role:      "CLIENT",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*stayRequest)
		message string
	}{
		{name: "valid", mutate: func(*stayRequest) {}},
		{name: "missing name", mutate: func(r *stayRequest) { r.GuestName = "" }, message: "guestName is required"},
		{name: "bad email", mutate: func(r *stayRequest) { r.Email = "joao" }, message: "email must be a valid email address"},
		{name: "bad date", mutate: func(r *stayRequest) { r.CheckIn = "10/06/2024" }, message: "checkIn must be a date formatted as YYYY-MM-DD"},
		{name: "bad time", mutate: func(r *stayRequest) { r.Arrival = "25:00" }, message: "arrival must be a time formatted as HH:MM"},
		{name: "guests too many", mutate: func(r *stayRequest) { r.Guests = 11 }, message: "guests must be less than or equal to 10"},
		{name: "unknown role", mutate: func(r *stayRequest) { r.Role = "ADMIN" }, message: "role must be one of CLIENT HOTEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}

			assert.EqualError(t, err, tt.message)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("hotel@venus.com", "email"))
	assert.Error(t, validator.ValidateVar("", "required"))
	assert.NoError(t, validator.ValidateVar("2024-07-22", "date"))
}

func TestValidate(t *testing.T) {
	var req stayRequest

	err := validator.Validate(strings.NewReader(`{"guestName":"Ana Souza","email":"ana@venus.com","checkIn":"2024-07-20","guests":1,"role":"CLIENT"}`), &req)
	assert.NoError(t, err)
	assert.Equal(t, "Ana Souza", req.GuestName)

	err = validator.Validate(strings.NewReader(`{"guestName":`), &req)
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
