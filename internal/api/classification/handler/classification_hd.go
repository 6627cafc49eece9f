package classificationHandler

import (
	"TotemIA/internal/api/classification"
	contextPkg "TotemIA/pkg/context"
	"TotemIA/pkg/handlerUtil"
	jwtPkg "TotemIA/pkg/jwt"
	"TotemIA/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *ClassificationHandler) Classify(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing classify request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	totemID := ctx.Query("totem_id")
	frame, err := h.readFrame(ctx, requestID, &totemID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_frame")
	}

	result, err := h.classificationService.Classify(c, frame, userData.ID, totemID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "classify_frame")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"accepted":   result.Accepted,
			"category":   result.Category,
		}).Info("Classification successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *ClassificationHandler) Diagnose(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing diagnose request")

	frame, err := h.readFrame(ctx, requestID, nil)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_frame")
	}

	result, err := h.classificationService.Diagnose(c, frame)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "diagnose_frame")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

// readFrame accepts either a multipart upload under "image" or a JSON body
// with a base64 payload. totemID is filled from the JSON body when the query
// parameter was empty.
func (h *ClassificationHandler) readFrame(ctx *fiber.Ctx, requestID string, totemID *string) ([]byte, error) {
	file, err := ctx.FormFile("image")
	if err == nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file_name":  file.Filename,
			"file_size":  file.Size,
		}).Debug("Processing file upload")

		if err := h.utils.ValidateImageFile(file); err != nil {
			return nil, err
		}

		fileContent, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer fileContent.Close()

		return h.utils.ReadMultipartFile(fileContent)
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing JSON request")

	var req classification.ClassifyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, err
	}

	if err := h.validator.Struct(req); err != nil {
		return nil, err
	}

	if totemID != nil && *totemID == "" {
		*totemID = req.TotemID
	}

	return h.utils.DecodeBase64Image(req.ImageBase64)
}

func (h *ClassificationHandler) handleClassifyWebSocket(c *websocket.Conn) {
	h.log.Info("Classification WebSocket client connected")
	defer h.log.Info("Classification WebSocket client disconnected")

	userID := c.Query("user_id")
	totemID := c.Query("totem_id")

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Classification WebSocket error: %v", err)
			} else {
				h.log.Info("Classification WebSocket connection closed")
			}
			break
		}

		if messageType == websocket.BinaryMessage {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			result, err := h.classificationService.Classify(ctx, message, userID, totemID)
			cancel()

			if err != nil {
				h.log.Errorf("Error classifying frame: %v", err)
				if writeErr := c.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
					h.log.Errorf("Error sending error response: %v", writeErr)
					break
				}
				continue
			}

			if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
				h.log.Errorf("Error setting write deadline: %v", err)
				break
			}

			if err := c.WriteJSON(result); err != nil {
				h.log.Errorf("Error writing JSON response: %v", err)
				break
			}

			if err := c.SetWriteDeadline(time.Time{}); err != nil {
				h.log.Errorf("Error resetting write deadline: %v", err)
				break
			}
		} else {
			h.log.Warnf("Received unexpected message type: %d", messageType)
		}
	}
}
