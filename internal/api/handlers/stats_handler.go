package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/carelingo/backend/internal/storage/models"
	"github.com/carelingo/backend/pkg/logger"
)

// StatsStore is the read side of the query log.
type StatsStore interface {
	Stats() (*models.StatsReport, error)
	SessionHistory(sessionID string, limit int) ([]models.QueryRecord, error)
}

type StatsHandler struct {
	store StatsStore
}

func NewStatsHandler(store StatsStore) *StatsHandler {
	return &StatsHandler{
		store: store,
	}
}

func (h *StatsHandler) HandleStats(c *fiber.Ctx) error {
	report, err := h.store.Stats()
	if err != nil {
		logger.Error("Failed to compute statistics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve statistics",
		})
	}

	return c.JSON(report)
}

func (h *StatsHandler) HandleSessionHistory(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id is required",
		})
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be an integer between 1 and 500",
			})
		}
		limit = parsed
	}

	records, err := h.store.SessionHistory(sessionID, limit)
	if err != nil {
		logger.Error("Failed to load session history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve session history",
		})
	}

	history := make([]fiber.Map, 0, len(records))
	for _, r := range records {
		history = append(history, fiber.Map{
			"query_id":   r.ID,
			"message":    r.Message,
			"language":   r.Language,
			"response":   r.Response,
			"accuracy":   r.Confidence,
			"timestamp":  r.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"session_id": sessionID,
		"history":    history,
	})
}
