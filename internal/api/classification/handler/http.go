package classificationHandler

import (
	classificationService "TotemIA/internal/api/classification/service"
	"TotemIA/internal/middleware"
	"TotemIA/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ClassificationHandler struct {
	log                   *logrus.Logger
	validator             *validator.Validate
	middleware            middleware.Middleware
	classificationService classificationService.IClassificationService
	utils                 utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	cs classificationService.IClassificationService,
	utils utils.IUtils,
) *ClassificationHandler {
	return &ClassificationHandler{
		log:                   log,
		validator:             validator,
		middleware:            middleware,
		classificationService: cs,
		utils:                 utils,
	}
}

func (h *ClassificationHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	caps := srv.Group("/caps")

	caps.Post("/classify", h.middleware.NewTokenMiddleware, h.Classify)
	caps.Post("/diagnose", h.Diagnose)
	caps.Use("/ws", wsMiddleware)
	caps.Get("/ws", websocket.New(h.handleClassifyWebSocket))
}
