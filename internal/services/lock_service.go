package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minPasscodeLength = 4

var (
	ErrLockDisabled    = errors.New("app lock is not enabled")
	ErrInvalidPasscode = errors.New("invalid passcode")
)

// PasscodeStore is the slice of the settings service the lock needs.
type PasscodeStore interface {
	PasscodeHash() string
	SetPasscodeHash(hash string) error
}

// LockService manages the optional app lock: a single passcode for the
// whole device, hashed into the preferences document. This is a device
// lock, not user accounts.
type LockService struct {
	passcodes PasscodeStore
}

func NewLockService(passcodes PasscodeStore) *LockService {
	return &LockService{passcodes: passcodes}
}

func (service *LockService) Enabled() bool {
	return service.passcodes.PasscodeHash() != ""
}

// SetPasscode enables the lock or changes the passcode. When a
// passcode is already set the current one must be presented first.
func (service *LockService) SetPasscode(current string, next string) error {
	if service.Enabled() {
		if err := service.Verify(current); err != nil {
			return err
		}
	}

	next = strings.TrimSpace(next)
	if len(next) < minPasscodeLength {
		return fmt.Errorf("%w: passcode must be at least %d characters", ErrValidation, minPasscodeLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return service.passcodes.SetPasscodeHash(string(hash))
}

// RemovePasscode disables the lock after verifying the current
// passcode.
func (service *LockService) RemovePasscode(current string) error {
	if !service.Enabled() {
		return ErrLockDisabled
	}
	if err := service.Verify(current); err != nil {
		return err
	}
	return service.passcodes.SetPasscodeHash("")
}

// Verify checks a presented passcode against the stored hash.
func (service *LockService) Verify(passcode string) error {
	hash := service.passcodes.PasscodeHash()
	if hash == "" {
		return ErrLockDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) != nil {
		return ErrInvalidPasscode
	}
	return nil
}
