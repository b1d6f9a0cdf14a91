package services

import (
	"encoding/json"
	"errors"
)

// ErrValidation marks a rejected mutation: a required field was empty
// after trimming. Validation runs before any state change, so a
// validation failure never leaves partial state behind.
var ErrValidation = errors.New("validation failed")

// CollectionStore is the slice of the persistent store the collection
// managers need: whole-document load and save per collection key.
type CollectionStore interface {
	Load(key string) (json.RawMessage, bool, error)
	Save(key string, document any) error
}

// Localizer resolves a message key in the currently selected language.
type Localizer interface {
	Message(key string) string
}
