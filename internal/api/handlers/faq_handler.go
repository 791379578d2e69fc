package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carelingo/backend/internal/faq"
)

type FAQHandler struct {
	entries []faq.Entry
}

func NewFAQHandler(entries []faq.Entry) *FAQHandler {
	return &FAQHandler{
		entries: entries,
	}
}

func (h *FAQHandler) HandleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": faq.Categories(h.entries),
	})
}

func (h *FAQHandler) HandleEntries(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		return c.JSON(fiber.Map{
			"entries": h.entries,
		})
	}

	entries := faq.ByCategory(h.entries, category)
	if len(entries) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown category: " + category,
		})
	}

	return c.JSON(fiber.Map{
		"entries": entries,
	})
}
