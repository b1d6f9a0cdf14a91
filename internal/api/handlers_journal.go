package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/heartlogai/heartlog/internal/services"
	"github.com/heartlogai/heartlog/internal/store"
)

type journalEntryPayload struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Mood    *string `json:"mood"`
}

func (handler *Handler) GetJournal(c *fiber.Ctx) error {
	return c.JSON(handler.journal.Entries())
}

// SearchJournal answers both substring search (?q=) and mood filter
// (?mood=). Both are pure reads over the in-memory collection.
func (handler *Handler) SearchJournal(c *fiber.Ctx) error {
	if mood := strings.TrimSpace(c.Query("mood")); mood != "" {
		return c.JSON(handler.journal.FilterByMood(mood))
	}
	return c.JSON(handler.journal.Search(c.Query("q")))
}

func (handler *Handler) CreateJournalEntry(c *fiber.Ctx) error {
	payload := journalEntryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.journal.Add(
		stringValue(payload.Title),
		stringValue(payload.Content),
		stringValue(payload.Mood),
	)
	if err != nil {
		return handler.respondJournalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateJournalEntry(c *fiber.Ctx) error {
	payload := journalEntryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.journal.Update(c.Params("id"), services.JournalPatch{
		Title:   payload.Title,
		Content: payload.Content,
		Mood:    payload.Mood,
	})
	if err != nil {
		return handler.respondJournalError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteJournalEntry(c *fiber.Ctx) error {
	if err := handler.journal.Remove(c.Params("id")); err != nil {
		return handler.respondJournalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ClearJournal(c *fiber.Ctx) error {
	if err := handler.journal.Clear(); err != nil {
		return handler.respondJournalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) respondJournalError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrValidation) {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if errors.Is(err, services.ErrEntryNotFound) {
		return apiError(c, fiber.StatusNotFound, "journal entry not found")
	}
	var storageErr *store.StorageError
	if errors.As(err, &storageErr) {
		return apiError(c, fiber.StatusInternalServerError, "failed to save journal")
	}
	return apiError(c, fiber.StatusInternalServerError, "journal operation failed")
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
