package speechHandler

import (
	"TotemIA/internal/entity"
	contextPkg "TotemIA/pkg/context"
	"TotemIA/pkg/handlerUtil"
	jwtPkg "TotemIA/pkg/jwt"
	"TotemIA/pkg/log"
	"errors"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *SpeechHandler) GetEncouragement(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get encouragement request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	capColor := ctx.Query("color")
	if capColor != "" && !entity.IsValidCapCategory(capColor) {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("invalid color parameter"), ctx.Path())
	}

	result, err := h.speechService.GetEncouragement(c, userData.ID, capColor)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_encouragement")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
