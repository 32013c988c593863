package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"venus/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{name: "seed credential", password: "123"},
		{name: "special characters", password: "P@ssw0rd!#$%^&*()"},
		{name: "accented", password: "pousada-das-dunas-ção"},
		{name: "empty", password: "", expectedError: password.ErrEmptyPassword},
		{name: "longer than bcrypt allows", password: strings.Repeat("a", 100), expectedError: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.HashWithCost(tt.password, bcrypt.MinCost)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, hash)
				return
			}

			assert.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$"))
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.HashWithCost("123", bcrypt.MinCost)
	assert.NoError(t, err)

	tests := []struct {
		name          string
		password      string
		hash          string
		expectedError error
	}{
		{name: "match", password: "123", hash: hash},
		{name: "wrong password", password: "1234", hash: hash, expectedError: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, expectedError: password.ErrInvalidPassword},
		{name: "empty hash", password: "123", hash: "", expectedError: password.ErrInvalidPassword},
		{name: "malformed hash", password: "123", hash: "123", expectedError: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)
			if tt.expectedError == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.HashWithCost("123", bcrypt.MinCost)
	assert.NoError(t, err)
	second, err := password.HashWithCost("123", bcrypt.MinCost)
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { password.Discard("anything") })
}
