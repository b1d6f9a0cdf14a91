package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/heartlogai/heartlog/internal/security"
)

const (
	unlockCookieName = "heartlog_unlock"
	unlockTokenTTL   = 24 * time.Hour
)

type unlockClaims struct {
	jwt.RegisteredClaims
}

// LockRequired gates the API behind the app lock. With no passcode set
// the app is open; otherwise the request must carry a valid unlock
// cookie.
func (handler *Handler) LockRequired(c *fiber.Ctx) error {
	if !handler.lock.Enabled() {
		return c.Next()
	}
	if err := handler.validateUnlockCookie(c); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "locked")
	}
	return c.Next()
}

func (handler *Handler) setUnlockCookie(c *fiber.Ctx) error {
	token, err := handler.buildUnlockToken()
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     unlockCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(unlockTokenTTL),
	})
	return nil
}

func (handler *Handler) clearUnlockCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     unlockCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) buildUnlockToken() (string, error) {
	tokenID, err := security.TokenID(16)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := unlockClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   "device",
			ExpiresAt: jwt.NewNumericDate(now.Add(unlockTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) validateUnlockCookie(c *fiber.Ctx) error {
	rawToken := strings.TrimSpace(c.Cookies(unlockCookieName))
	if rawToken == "" {
		return errors.New("missing unlock cookie")
	}

	claims := &unlockClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return errors.New("token expired")
	}
	return nil
}
