package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venus/permissions"
	"venus/shared/constant"
)

func TestGet_FindPermissions(t *testing.T) {
	perms := permissions.Get()
	require.NotNil(t, perms)

	tests := []struct {
		path     string
		method   string
		expected []string
	}{
		{"/v1/rooms", http.MethodPut, []string{constant.RoleHotel}},
		{"/v1/reservations", http.MethodPost, []string{constant.RoleClient}},
		{"/v1/reservations/{id}/status", http.MethodPatch, []string{constant.RoleHotel, constant.RoleClient}},
		{"/v1/notifications", http.MethodGet, []string{}},
		{"/v1/hotels", http.MethodGet, nil},
		{"/v1/rooms/r1", http.MethodDelete, []string{constant.RoleHotel}},
		{"/v1/reservations/res-9/status", http.MethodPatch, []string{constant.RoleHotel, constant.RoleClient}},
		{"/v1/clients/c1/reservations", http.MethodGet, []string{constant.RoleClient}},
		{"/v1/rooms/r1", http.MethodPut, nil},
		{"/v1/rooms//", http.MethodDelete, nil},
		{"/v1/rooms/r1/extra", http.MethodDelete, nil},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, perms.FindPermissions(tt.path, tt.method).Permissions)
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	tests := []struct {
		name       string
		permission permissions.Permission
		role       string
		expected   bool
	}{
		{name: "listed role", permission: permissions.Permission{Permissions: []string{constant.RoleHotel}}, role: constant.RoleHotel, expected: true},
		{name: "unlisted role", permission: permissions.Permission{Permissions: []string{constant.RoleHotel}}, role: constant.RoleClient},
		{name: "no roles listed", permission: permissions.Permission{}, role: constant.RoleClient, expected: true},
		{name: "skipped route", permission: permissions.Permission{Permissions: []string{constant.RoleHotel}, Skip: true}, role: constant.RoleClient, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.permission.Allows(tt.role))
		})
	}
}
