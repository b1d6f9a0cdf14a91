package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/heartlogai/heartlog/internal/services"
)

type unlockPayload struct {
	Passcode string `json:"passcode"`
}

type passcodePayload struct {
	Current  string `json:"current"`
	Passcode string `json:"passcode"`
}

func (handler *Handler) LockStatus(c *fiber.Ctx) error {
	unlocked := true
	if handler.lock.Enabled() {
		unlocked = handler.validateUnlockCookie(c) == nil
	}
	return c.JSON(fiber.Map{
		"enabled":  handler.lock.Enabled(),
		"unlocked": unlocked,
	})
}

// Unlock trades the passcode for an unlock cookie. Failed attempts are
// throttled per client so a short passcode cannot be enumerated.
func (handler *Handler) Unlock(c *fiber.Ctx) error {
	const unlockAttemptsLimit = 8
	const unlockAttemptsWindow = 15 * time.Minute

	now := time.Now()
	limiterKey := requestLimiterKey(c)
	if handler.unlockLimiter.tooManyRecent(limiterKey, now, unlockAttemptsLimit, unlockAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many unlock attempts")
	}

	payload := unlockPayload{}
	if err := c.BodyParser(&payload); err != nil {
		handler.unlockLimiter.addFailure(limiterKey, now, unlockAttemptsWindow)
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.lock.Verify(payload.Passcode); err != nil {
		if errors.Is(err, services.ErrLockDisabled) {
			return apiError(c, fiber.StatusBadRequest, "lock is not enabled")
		}
		handler.unlockLimiter.addFailure(limiterKey, now, unlockAttemptsWindow)
		return apiError(c, fiber.StatusUnauthorized, handler.message("lock.invalid_passcode"))
	}

	if err := handler.setUnlockCookie(c); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to unlock")
	}
	handler.unlockLimiter.reset(limiterKey)
	return c.JSON(fiber.Map{"message": handler.message("lock.unlocked")})
}

// SetPasscode enables the app lock, or rotates the passcode when one is
// already set. Rotation requires the current passcode.
func (handler *Handler) SetPasscode(c *fiber.Ctx) error {
	payload := passcodePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.lock.SetPasscode(payload.Current, payload.Passcode); err != nil {
		if errors.Is(err, services.ErrInvalidPasscode) {
			return apiError(c, fiber.StatusUnauthorized, handler.message("lock.invalid_passcode"))
		}
		if errors.Is(err, services.ErrValidation) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to set passcode")
	}

	if err := handler.setUnlockCookie(c); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to set passcode")
	}
	return c.JSON(fiber.Map{"message": handler.message("lock.enabled")})
}

func (handler *Handler) RemovePasscode(c *fiber.Ctx) error {
	payload := passcodePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.lock.RemovePasscode(payload.Current); err != nil {
		if errors.Is(err, services.ErrInvalidPasscode) {
			return apiError(c, fiber.StatusUnauthorized, handler.message("lock.invalid_passcode"))
		}
		if errors.Is(err, services.ErrLockDisabled) {
			return apiError(c, fiber.StatusBadRequest, "lock is not enabled")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to remove passcode")
	}

	handler.clearUnlockCookie(c)
	return c.JSON(fiber.Map{"message": handler.message("lock.disabled")})
}
