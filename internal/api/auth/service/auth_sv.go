package authService

import (
	"TotemIA/internal/api/auth"
	"TotemIA/internal/entity"
	contextPkg "TotemIA/pkg/context"
	jwtPkg "TotemIA/pkg/jwt"
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"time"
)

func (s *authDomainImpl) Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.LoginUserResponse{}, err
	}

	var user entity.User
	switch {
	case req.Email != "":
		user, err = repo.Users.GetByEmail(c, req.Email)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Failed to get user by email")

				return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
			} else {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Error("Failed to get user by email")

				return auth.LoginUserResponse{}, err
			}
		}
	case req.PhoneNumber != "":
		user, err = repo.Users.GetByPhoneNumber(c, req.PhoneNumber)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Failed to get user by phone number")

				return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
			} else {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Error("Failed to get user by phone number")

				return auth.LoginUserResponse{}, err
			}
		}
	default:
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      "Email or PhoneNumber is required",
		}).Warn("Invalid login request")
		return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Password comparison failed")
		return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
	}

	userData := MakeUserData(user)

	token, expired, err := jwtPkg.Sign(userData, time.Hour*1)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign token")
		return auth.LoginUserResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("Token created")

	res := auth.LoginUserResponse{
		AccessToken:      token,
		ExpiresInMinutes: time.Until(time.Unix(expired, 0)).Minutes(),
	}

	return res, nil
}
