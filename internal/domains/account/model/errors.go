package model

import (
	"net/http"

	"venus/shared/failure"
)

var (
	ErrDuplicateEmail     = &failure.Failure{Code: http.StatusConflict, Message: "email already registered"}
	ErrInvalidCredentials = &failure.Failure{Code: http.StatusUnauthorized, Message: "invalid email or password"}
	ErrNoSession          = &failure.Failure{Code: http.StatusUnauthorized, Message: "no active session"}
	ErrNotHotel           = &failure.Failure{Code: http.StatusForbidden, Message: "only the hotel itself can change its profile"}
	ErrUnknownRole        = &failure.Failure{Code: http.StatusBadRequest, Message: "role must be CLIENT or HOTEL"}
	ErrProfileMismatch    = &failure.Failure{Code: http.StatusBadRequest, Message: "profile payload does not match the role"}
)
