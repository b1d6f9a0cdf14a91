package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/heartlogai/heartlog/internal/generation"
	"github.com/heartlogai/heartlog/internal/models"
)

const chatCollectionKey = "chat_messages"

var ErrChatLoadFailed = errors.New("load chat collection failed")

const chatWelcomeText = "Hello! I'm your AI journal companion. How are you feeling today?"

// ReplyGenerator is the slice of the generation client the chat flow
// needs: one utterance in, one reply or failure out.
type ReplyGenerator interface {
	Generate(ctx context.Context, utterance string) (generation.Reply, error)
}

// SendResult reports what one send appended to the stream. A
// generation failure shows up as an error-flagged Reply, never as a
// failed send; StorageError carries the first failed write, if any,
// while the in-memory messages stand regardless.
type SendResult struct {
	UserMessage  models.ChatMessage
	Reply        models.ChatMessage
	FallbackUsed bool
	StorageError error
}

// ChatService owns the companion chat stream: append-only, persisted
// as a whole after each mutation, cleared back to the welcome message.
type ChatService struct {
	mu        sync.Mutex
	store     CollectionStore
	generator ReplyGenerator
	localizer Localizer
	messages  []models.ChatMessage
	now       func() time.Time
}

func NewChatService(store CollectionStore, generator ReplyGenerator, localizer Localizer) (*ChatService, error) {
	service := &ChatService{
		store:     store,
		generator: generator,
		localizer: localizer,
		now:       time.Now,
	}

	raw, found, err := store.Load(chatCollectionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChatLoadFailed, err)
	}
	if !found {
		service.messages = []models.ChatMessage{service.welcomeMessage()}
		if err := store.Save(chatCollectionKey, service.messages); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChatLoadFailed, err)
		}
		return service, nil
	}

	messages := make([]models.ChatMessage, 0)
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChatLoadFailed, err)
	}
	service.messages = messages
	return service, nil
}

func (service *ChatService) welcomeMessage() models.ChatMessage {
	return models.ChatMessage{
		ID:        "1",
		Text:      chatWelcomeText,
		IsUser:    false,
		Timestamp: service.now(),
	}
}

func (service *ChatService) Messages() []models.ChatMessage {
	service.mu.Lock()
	defer service.mu.Unlock()

	result := make([]models.ChatMessage, len(service.messages))
	copy(result, service.messages)
	return result
}

// Send appends the user's message, asks the generator for a reply and
// appends either the reply or a localized error-flagged message. The
// returned error is non-nil only for validation; a generation failure
// never escapes the send boundary.
func (service *ChatService) Send(ctx context.Context, text string) (SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SendResult{}, fmt.Errorf("%w: message is required", ErrValidation)
	}

	service.mu.Lock()
	userMessage := models.ChatMessage{
		ID:        newRecordID(service.now(), service.idTaken),
		Text:      text,
		IsUser:    true,
		Timestamp: service.now(),
	}
	service.messages = append(service.messages, userMessage)
	storageErr := service.persist()
	service.mu.Unlock()

	if storageErr != nil {
		log.Printf("chat: user message kept in memory, save failed: %v", storageErr)
	}

	result := SendResult{UserMessage: userMessage, StorageError: storageErr}

	reply, err := service.generator.Generate(ctx, text)

	service.mu.Lock()
	defer service.mu.Unlock()

	companion := models.ChatMessage{
		ID:        newRecordID(service.now(), service.idTaken),
		IsUser:    false,
		Timestamp: service.now(),
	}
	if err != nil {
		log.Printf("chat: generation failed: %v", err)
		companion.Text = service.localizer.Message("chat.generation_failed")
		companion.IsError = true
	} else {
		companion.Text = reply.Text
		result.FallbackUsed = reply.FallbackUsed
	}

	service.messages = append(service.messages, companion)
	if err := service.persist(); err != nil {
		log.Printf("chat: companion message kept in memory, save failed: %v", err)
		if result.StorageError == nil {
			result.StorageError = err
		}
	}

	result.Reply = companion
	return result, nil
}

// Clear resets the stream to the welcome message.
func (service *ChatService) Clear() error {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.messages = []models.ChatMessage{service.welcomeMessage()}
	return service.persist()
}

func (service *ChatService) persist() error {
	return service.store.Save(chatCollectionKey, service.messages)
}

func (service *ChatService) idTaken(id string) bool {
	for _, message := range service.messages {
		if message.ID == id {
			return true
		}
	}
	return false
}
