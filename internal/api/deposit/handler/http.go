package depositHandler

import (
	depositService "TotemIA/internal/api/deposit/service"
	"TotemIA/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DepositHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	depositService depositService.IDepositService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	depositService depositService.IDepositService,
) *DepositHandler {
	return &DepositHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		depositService: depositService,
	}
}

func (h *DepositHandler) Start(srv fiber.Router) {
	deposits := srv.Group("/deposits")

	deposits.Get("/", h.middleware.NewTokenMiddleware, h.GetDepositsByPeriod)
	deposits.Get("/stats", h.middleware.NewTokenMiddleware, h.GetUserStats)
	deposits.Get("/leaderboard", h.GetLeaderboard)
}
