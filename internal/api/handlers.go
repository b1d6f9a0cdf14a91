package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/heartlogai/heartlog/internal/i18n"
	"github.com/heartlogai/heartlog/internal/services"
)

// Handler wires the collection managers to the HTTP surface. It is the
// Presentation Layer consumer of the core: every route translates a
// request into exactly one manager call.
type Handler struct {
	journal       *services.JournalService
	chat          *services.ChatService
	mood          *services.MoodService
	settings      *services.SettingsService
	lock          *services.LockService
	export        *services.ExportService
	i18n          *i18n.Manager
	secretKey     []byte
	cookieSecure  bool
	sending       sendGuard
	unlockLimiter *attemptLimiter
}

type Config struct {
	Journal      *services.JournalService
	Chat         *services.ChatService
	Mood         *services.MoodService
	Settings     *services.SettingsService
	Lock         *services.LockService
	Export       *services.ExportService
	I18n         *i18n.Manager
	SecretKey    string
	CookieSecure bool
}

func NewHandler(config Config) *Handler {
	return &Handler{
		journal:       config.Journal,
		chat:          config.Chat,
		mood:          config.Mood,
		settings:      config.Settings,
		lock:          config.Lock,
		export:        config.Export,
		i18n:          config.I18n,
		secretKey:     []byte(config.SecretKey),
		cookieSecure:  config.CookieSecure,
		unlockLimiter: newAttemptLimiter(),
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// message resolves a locale key in the currently selected language.
func (handler *Handler) message(key string) string {
	return handler.i18n.Message(handler.settings.Language(), key)
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}
