package authService

import (
	"TotemIA/internal/api/auth"
	authRepository "TotemIA/internal/api/auth/repository"
	"TotemIA/internal/entity"
	"TotemIA/pkg/bcrypt"
	"TotemIA/pkg/s3"
	"TotemIA/pkg/utils"
	"context"
	"github.com/sirupsen/logrus"
	"mime/multipart"
)

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
	GetRepository() authRepository.Repository
}

type UserDomain interface {
	RegisterUser(c context.Context, req auth.CreateUserRequest) error
	GetByID(c context.Context, id string) (entity.User, error)
	UpdateUser(c context.Context, user entity.UserLoginData, req auth.UpdateUserRequest) error
	DeleteUser(c context.Context, id string) error
	UpdateProfilePhoto(c context.Context, userID string, photoFile *multipart.FileHeader) (*auth.ProfilePhotoResponse, error)
}

type AuthDomain interface {
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
}

type authService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository
	s3Client       s3.ItfS3
	bcryptUtils    bcrypt.IBcrypt
	utils          utils.IUtils

	userDomain UserDomain
	authDomain AuthDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

func (a *authService) GetRepository() authRepository.Repository {
	return a.authRepository
}

type userDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	s3Client    s3.ItfS3
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
}

type authDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	s3Client s3.ItfS3,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) AuthService {
	return &authService{
		log:            log,
		authRepository: authRepo,
		s3Client:       s3Client,
		bcryptUtils:    bcryptUtils,
		utils:          utils,

		userDomain: &userDomainImpl{log: log, repo: authRepo, s3Client: s3Client, bcryptUtils: bcryptUtils, utils: utils},
		authDomain: &authDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils},
	}
}
