package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/chat"
	"github.com/carelingo/backend/internal/translation"
	"github.com/carelingo/backend/pkg/logger"
)

type ChatHandler struct {
	service *chat.Service
}

func NewChatHandler(service *chat.Service) *ChatHandler {
	return &ChatHandler{
		service: service,
	}
}

func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req struct {
		Message   string `json:"message"`
		Language  string `json:"language"`
		SessionID string `json:"session_id"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Language == "" {
		req.Language = "en"
	}

	response, err := h.service.ProcessMessage(c.Context(), chat.Request{
		Message:   req.Message,
		Language:  req.Language,
		SessionID: req.SessionID,
	})
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message cannot be empty",
			})
		}
		if errors.Is(err, translation.ErrUnsupportedLanguage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported language code: " + req.Language,
			})
		}
		logger.Error("Failed to process message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"response": response.Response,
		"accuracy": response.Accuracy,
		"query_id": response.QueryID,
	})
}

func (h *ChatHandler) HandleLanguages(c *fiber.Ctx) error {
	return c.JSON(translation.Languages())
}
