package models

import "time"

// ChatMessage is one message in the companion chat stream. Insertion
// order is chronological; messages are appended and never reordered.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"isError,omitempty"`
}
