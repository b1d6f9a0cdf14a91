package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type languagePayload struct {
	Language string `json:"language"`
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"language":           handler.settings.Language(),
		"supportedLanguages": handler.i18n.SupportedLanguages(),
		"lockEnabled":        handler.lock.Enabled(),
	})
}

func (handler *Handler) GetLanguage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"language": handler.settings.Language()})
}

// SetLanguage switches the active language. Unknown codes fall back to
// the default language rather than erroring; an empty payload picks
// the best supported match from the request's Accept-Language header.
func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	payload := languagePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	requested := strings.TrimSpace(payload.Language)
	if requested == "" {
		requested = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}

	language, err := handler.settings.SetLanguage(requested)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save language")
	}
	return c.JSON(fiber.Map{
		"language": language,
		"message":  handler.message("settings.language_updated"),
	})
}
