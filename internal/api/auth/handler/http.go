package authHandler

import (
	authService "TotemIA/internal/api/auth/service"
	"TotemIA/internal/middleware"
	"TotemIA/pkg/s3"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log         *logrus.Logger
	authService authService.AuthService
	validator   *validator.Validate
	middleware  middleware.Middleware
	s3Client    s3.ItfS3
}

func New(
	log *logrus.Logger,
	as authService.AuthService,
	validate *validator.Validate,
	middleware middleware.Middleware,
	s3Client s3.ItfS3) *AuthHandler {
	return &AuthHandler{
		log:         log,
		authService: as,
		validator:   validate,
		middleware:  middleware,
		s3Client:    s3Client,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")
	auth.Post("/login", h.HandleLogin)

	users := srv.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Post("/profile-photo", h.middleware.NewTokenMiddleware, h.HandleUpdateProfilePhoto)
	users.Get("/profile-photo", h.middleware.NewTokenMiddleware, h.HandleGetProfilePhoto)
	users.Get("/:id", h.middleware.NewTokenMiddleware, h.HandleGetUserById)
	users.Patch("/", h.middleware.NewTokenMiddleware, h.HandleUpdateUser)
	users.Delete("/:id", h.middleware.NewTokenMiddleware, h.HandleDeleteUser)
}
