package rewardsHandler

import (
	rewardsService "TotemIA/internal/api/rewards/service"
	"TotemIA/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RewardsHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	rewardsService rewardsService.IRewardsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	rewardsService rewardsService.IRewardsService,
) *RewardsHandler {
	return &RewardsHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		rewardsService: rewardsService,
	}
}

func (h *RewardsHandler) Start(srv fiber.Router) {
	rewards := srv.Group("/rewards")

	rewards.Get("/wallet", h.middleware.NewTokenMiddleware, h.GetWallet)
	rewards.Get("/partners", h.GetPartners)
	rewards.Get("/partners/:id/rewards", h.GetRewardsByPartner)
	rewards.Post("/redeem", h.middleware.NewTokenMiddleware, h.RedeemReward)
	rewards.Get("/redemptions", h.middleware.NewTokenMiddleware, h.GetRedemptions)
}
