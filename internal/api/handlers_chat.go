package api

import (
	"errors"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"

	"github.com/heartlogai/heartlog/internal/services"
)

// sendGuard is the single-in-flight flag for the chat send operation.
// The core does not enforce it; the caller-facing surface does.
type sendGuard struct {
	busy atomic.Bool
}

func (guard *sendGuard) acquire() bool {
	return guard.busy.CompareAndSwap(false, true)
}

func (guard *sendGuard) release() {
	guard.busy.Store(false)
}

type chatSendPayload struct {
	Text string `json:"text"`
}

func (handler *Handler) GetChat(c *fiber.Ctx) error {
	return c.JSON(handler.chat.Messages())
}

// SendChatMessage runs one send through the chat manager. Only one
// send may be in flight at a time; a second request while the first is
// pending gets 409 without touching the collection.
func (handler *Handler) SendChatMessage(c *fiber.Ctx) error {
	payload := chatSendPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if !handler.sending.acquire() {
		return apiError(c, fiber.StatusConflict, handler.message("chat.send_in_progress"))
	}
	defer handler.sending.release()

	result, err := handler.chat.Send(c.Context(), payload.Text)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "send failed")
	}

	response := fiber.Map{
		"userMessage": result.UserMessage,
		"reply":       result.Reply,
	}
	if result.StorageError != nil {
		response["storageWarning"] = "messages could not be saved to storage"
	}
	return c.JSON(response)
}

func (handler *Handler) ClearChat(c *fiber.Ctx) error {
	if err := handler.chat.Clear(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear chat")
	}
	return c.JSON(handler.chat.Messages())
}
