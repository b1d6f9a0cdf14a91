package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/heartlogai/heartlog/internal/models"
	"github.com/heartlogai/heartlog/internal/services"
)

const moodDayQueryLayout = "2006-01-02"

type moodSavePayload struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Emoji string `json:"emoji"`
	Note  string `json:"note"`
}

func (handler *Handler) GetMoods(c *fiber.Ctx) error {
	return c.JSON(handler.mood.Entries())
}

func (handler *Handler) GetMoodOptions(c *fiber.Ctx) error {
	options := models.MoodCatalog()
	response := make([]fiber.Map, 0, len(options))
	for _, option := range options {
		response = append(response, fiber.Map{"name": option.Name, "emoji": option.Emoji})
	}
	return c.JSON(response)
}

// SaveMood records the mood for a day (today when the payload has no
// date). A second save for the same day replaces the first.
func (handler *Handler) SaveMood(c *fiber.Ctx) error {
	payload := moodSavePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	day := time.Now()
	if trimmed := strings.TrimSpace(payload.Date); trimmed != "" {
		parsed, err := time.Parse(moodDayQueryLayout, trimmed)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		day = parsed
	}

	entry, err := handler.mood.Save(day, payload.Mood, payload.Emoji, payload.Note)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save mood")
	}
	return c.JSON(entry)
}

func (handler *Handler) ClearMoods(c *fiber.Ctx) error {
	if err := handler.mood.Clear(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear moods")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
