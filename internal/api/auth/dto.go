package auth

import "time"

type CreateUserRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=255"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=14"`
	Password    string `json:"password" validate:"required,min=8,max=32"`
}

type LoginUserRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=14"`
	Password    string `json:"password" validate:"required"`
}

type LoginUserResponse struct {
	AccessToken      string  `json:"accessToken"`
	ExpiresInMinutes float64 `json:"expiresInMinutes"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

type UpdateProfilePhotoRequest struct {
	ID string `json:"id"`
}

type ProfilePhotoResponse struct {
	ID              string `json:"id"`
	ProfilePhotoURL string `json:"profile_photo_url"`
}

type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email,omitempty"`
	Name            string    `json:"name"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	ProfilePhotoURL string    `json:"profile_photo_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
