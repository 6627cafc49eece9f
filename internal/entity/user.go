package entity

import "time"

type User struct {
	ID              string    `db:"id"`
	Email           string    `db:"email"`
	Name            string    `db:"name"`
	Password        string    `db:"password"`
	PhoneNumber     string    `db:"phone_number"`
	ProfilePhotoURL string    `db:"profile_photo_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type UserLoginData struct {
	ID       string
	Username string
	Email    string
}
