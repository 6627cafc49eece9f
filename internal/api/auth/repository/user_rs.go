package authRepository

import (
	"TotemIA/internal/api/auth"
	"TotemIA/internal/entity"
	contextPkg "TotemIA/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"time"
)

type UserDB struct {
	ID              sql.NullString `db:"id"`
	Email           sql.NullString `db:"email"`
	Name            sql.NullString `db:"name"`
	Password        sql.NullString `db:"password"`
	PhoneNumber     sql.NullString `db:"phone_number"`
	ProfilePhotoURL sql.NullString `db:"profile_photo_url"`
	CreatedAt       sql.NullTime   `db:"created_at"`
	UpdatedAt       sql.NullTime   `db:"updated_at"`
}

func (r *userRepository) CreateUser(c context.Context, user entity.User) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":           user.ID,
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"name":         user.Name,
		"password":     user.Password,
		"created_at":   time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUser")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "users_phone_number_key" {
					r.log.WithFields(logrus.Fields{
						"request_id": requestID,
						"error":      err.Error(),
					}).Warn("Phone number already exists")
					return auth.ErrPhoneNumberAlreadyExists
				}
				if pqErr.Constraint == "users_email_key" {
					r.log.WithFields(logrus.Fields{
						"request_id": requestID,
						"error":      err.Error(),
					}).Warn("Email already exists")
					return auth.ErrEmailAlreadyExists
				}
			}
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating user")

		return err
	}

	return nil
}

func (r *userRepository) GetByID(c context.Context, id string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	var user UserDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetById, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")

		return entity.User{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetByID no rows found")
			return entity.User{}, auth.ErrUserNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.User{}, err
	}

	userRes := r.makeUser(user)

	return userRes, nil
}

func (r *userRepository) GetByPhoneNumber(c context.Context, phoneNumber string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	var user UserDB

	argsKV := map[string]interface{}{
		"phone_number": phoneNumber,
	}

	query, args, err := sqlx.Named(queryGetByPhoneNumber, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByPhoneNumber named query preparation err")
		return entity.User{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetByPhoneNumber no rows found")
			return entity.User{}, auth.ErrUserNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByPhoneNumber execution err")
		return entity.User{}, err
	}

	userRes := r.makeUser(user)
	return userRes, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var user UserDB

	argsKV := map[string]interface{}{
		"email": email,
	}

	query, args, err := sqlx.Named(queryGetByEmail, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByEmail named query preparation err")

		return entity.User{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetByEmail no rows found")

			return entity.User{}, auth.ErrUserNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByEmail execution err")

		return entity.User{}, err
	}

	return r.makeUser(user), nil
}

func (r *userRepository) UpdateUser(c context.Context, user entity.User) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateUser named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateUser execution err")

		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("UpdateUser no rows affected")
		return auth.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) UpdateProfilePhoto(ctx context.Context, id string, photoURL string) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":                id,
		"profile_photo_url": photoURL,
		"updated_at":        time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateProfilePhoto, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateProfilePhoto named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateProfilePhoto execution err")
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("UpdateProfilePhoto no rows affected")
		return auth.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeleteUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteUser named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteUser execution err")

		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("DeleteUser no rows affected")
		return auth.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) makeUser(user UserDB) entity.User {
	var createdAt, updatedAt time.Time

	if user.CreatedAt.Valid {
		createdAt = user.CreatedAt.Time
	}

	if user.UpdatedAt.Valid {
		updatedAt = user.UpdatedAt.Time
	}

	userRes := entity.User{
		ID:              user.ID.String,
		Email:           user.Email.String,
		Name:            user.Name.String,
		Password:        user.Password.String,
		PhoneNumber:     user.PhoneNumber.String,
		ProfilePhotoURL: user.ProfilePhotoURL.String,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}

	return userRes
}
