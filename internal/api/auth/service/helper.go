package authService

import (
	"TotemIA/internal/api/auth"
	"TotemIA/internal/entity"
)

func GetUserDifferenceData(DbUser entity.User, NewUser auth.UpdateUserRequest) entity.User {
	// Start with a copy of all existing user data
	result := DbUser

	// Then only override the fields that changed
	if NewUser.Name != "" && NewUser.Name != DbUser.Name {
		result.Name = NewUser.Name
	}

	if NewUser.Email != "" && NewUser.Email != DbUser.Email {
		result.Email = NewUser.Email
	}

	return result
}

func MakeUserData(user entity.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Name,
	}
}
