package speechHandler

import (
	speechService "TotemIA/internal/api/speech/service"
	"TotemIA/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SpeechHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	speechService speechService.ISpeechService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	speechService speechService.ISpeechService,
) *SpeechHandler {
	return &SpeechHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		speechService: speechService,
	}
}

func (h *SpeechHandler) Start(srv fiber.Router) {
	speech := srv.Group("/speech")

	speech.Get("/encouragement", h.middleware.NewTokenMiddleware, h.GetEncouragement)
}
