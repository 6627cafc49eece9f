package authRepository

const (
	queryCreateUser = `
INSERT INTO Users (id, email, phone_number, name, password, created_at)
VALUES (:id, :email, :phone_number, :name, :password, :created_at)`

	queryGetById = `
SELECT id, email, name, password, phone_number, profile_photo_url, created_at, updated_at
FROM Users
    WHERE id = :id`

	queryGetByPhoneNumber = `
SELECT id, email, name, password, phone_number, profile_photo_url, created_at, updated_at
FROM Users
    WHERE phone_number = :phone_number`

	queryGetByEmail = `
SELECT id, email, name, password, phone_number, profile_photo_url, created_at, updated_at
FROM Users
    WHERE email = :email`

	queryUpdateUser = `
UPDATE Users
SET name = :name,
    email = :email,
    updated_at = :updated_at
WHERE id = :id`

	queryDeleteUser = `
DELETE FROM Users
WHERE id = :id`

	queryUpdateProfilePhoto = `
		UPDATE Users
		SET profile_photo_url = :profile_photo_url,
			updated_at = :updated_at
		WHERE id = :id`
)
