package handlerUtil

import (
	"TotemIA/internal/api/auth"
	"TotemIA/internal/api/classification"
	"TotemIA/internal/api/deposit"
	"TotemIA/internal/api/rewards"
	"TotemIA/pkg/log"
	"TotemIA/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Auth domain errors
	if errors.Is(err, auth.ErrPhoneNumberAlreadyExists) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Phone number already exists")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Phone number already exists",
			"code":    "PHONE_NUMBER_ALREADY_EXISTS",
		})
	}

	if errors.Is(err, auth.ErrEmailAlreadyExists) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Email already exists")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Email already exists",
			"code":    "EMAIL_ALREADY_EXISTS",
		})
	}

	if errors.Is(err, auth.ErrUserNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("User not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
			"code":    "USER_NOT_FOUND",
		})
	}

	if errors.Is(err, auth.ErrInvalidEmailOrPassword) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid email or password")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid email or password",
			"code":    "INVALID_CREDENTIALS",
		})
	}

	if errors.Is(err, auth.ErrInvalidFileType) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid file type")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Only images are allowed.",
		})
	}

	if errors.Is(err, auth.ErrFileTooLarge) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("File too large")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File too large. Maximum size is 5MB.",
		})
	}

	if errors.Is(err, auth.ErrFailedToUploadFile) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Failed to upload file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload file",
		})
	}

	// Deposit domain errors
	if errors.Is(err, deposit.ErrDepositNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Deposit not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Deposit not found",
		})
	}

	if errors.Is(err, deposit.ErrInvalidCategory) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid cap category")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cap category",
		})
	}

	if errors.Is(err, deposit.ErrInvalidPeriod) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid period filter")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid period filter",
		})
	}

	// Rewards domain errors
	if errors.Is(err, rewards.ErrWalletNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Wallet not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Wallet not found",
		})
	}

	if errors.Is(err, rewards.ErrRewardNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Reward not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Reward not found",
		})
	}

	if errors.Is(err, rewards.ErrRewardInactive) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Reward is not active")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Reward is not active",
		})
	}

	if errors.Is(err, rewards.ErrInsufficientPoints) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Insufficient points")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Insufficient points for this reward",
		})
	}

	if errors.Is(err, rewards.ErrRedeemReward) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Failed to redeem reward")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to redeem reward",
		})
	}

	// Classification domain errors
	if errors.Is(err, classification.ErrInvalidImage) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Image could not be decoded")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image could not be decoded",
		})
	}

	if errors.Is(err, classification.ErrInternalServerError) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Internal server error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
