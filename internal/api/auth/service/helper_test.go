package authService

import (
	"testing"

	"TotemIA/internal/api/auth"
	"TotemIA/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestGetUserDifferenceData(t *testing.T) {
	dbUser := entity.User{
		ID:          "01HXYZ",
		Name:        "Maria",
		Email:       "maria@example.com",
		PhoneNumber: "5511999999999",
	}

	tests := []struct {
		name          string
		req           auth.UpdateUserRequest
		expectedName  string
		expectedEmail string
	}{
		{
			name:          "empty request keeps existing data",
			req:           auth.UpdateUserRequest{},
			expectedName:  "Maria",
			expectedEmail: "maria@example.com",
		},
		{
			name:          "name change only overrides name",
			req:           auth.UpdateUserRequest{Name: "Maria Silva"},
			expectedName:  "Maria Silva",
			expectedEmail: "maria@example.com",
		},
		{
			name:          "both fields change",
			req:           auth.UpdateUserRequest{Name: "Maria Silva", Email: "maria.silva@example.com"},
			expectedName:  "Maria Silva",
			expectedEmail: "maria.silva@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserDifferenceData(dbUser, tt.req)

			assert.Equal(t, tt.expectedName, result.Name)
			assert.Equal(t, tt.expectedEmail, result.Email)
			assert.Equal(t, dbUser.ID, result.ID)
			assert.Equal(t, dbUser.PhoneNumber, result.PhoneNumber)
		})
	}
}

func TestMakeUserData(t *testing.T) {
	user := entity.User{ID: "01HXYZ", Email: "maria@example.com", Name: "Maria"}

	data := MakeUserData(user)

	assert.Equal(t, "01HXYZ", data["id"])
	assert.Equal(t, "maria@example.com", data["email"])
	assert.Equal(t, "Maria", data["username"])
}
