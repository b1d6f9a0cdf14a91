package api

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/heartlogai/heartlog/internal/generation"
	"github.com/heartlogai/heartlog/internal/i18n"
	"github.com/heartlogai/heartlog/internal/services"
)

type memoryCollectionStore struct {
	documents map[string]json.RawMessage
}

func newMemoryCollectionStore() *memoryCollectionStore {
	return &memoryCollectionStore{documents: map[string]json.RawMessage{}}
}

func (store *memoryCollectionStore) Load(key string) (json.RawMessage, bool, error) {
	raw, found := store.documents[key]
	return raw, found, nil
}

func (store *memoryCollectionStore) Save(key string, document any) error {
	raw, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	store.documents[key] = raw
	return nil
}

type stubGenerator struct {
	reply generation.Reply
	err   error
}

func (generator *stubGenerator) Generate(ctx context.Context, utterance string) (generation.Reply, error) {
	return generator.reply, generator.err
}

type testLocalizer struct {
	i18n     *i18n.Manager
	settings *services.SettingsService
}

func (localizer *testLocalizer) Message(key string) string {
	return localizer.i18n.Message(localizer.settings.Language(), key)
}

func newTestApp(t *testing.T, generator services.ReplyGenerator) *fiber.App {
	t.Helper()

	store := newMemoryCollectionStore()
	i18nManager, err := i18n.NewManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("i18n init failed: %v", err)
	}

	settingsService, err := services.NewSettingsService(store, i18nManager)
	if err != nil {
		t.Fatalf("settings init failed: %v", err)
	}
	journalService, err := services.NewJournalService(store)
	if err != nil {
		t.Fatalf("journal init failed: %v", err)
	}
	chatService, err := services.NewChatService(store, generator, &testLocalizer{
		i18n:     i18nManager,
		settings: settingsService,
	})
	if err != nil {
		t.Fatalf("chat init failed: %v", err)
	}
	moodService, err := services.NewMoodService(store)
	if err != nil {
		t.Fatalf("mood init failed: %v", err)
	}
	lockService := services.NewLockService(settingsService)
	exportService := services.NewExportService(journalService, chatService)

	handler := NewHandler(Config{
		Journal:   journalService,
		Chat:      chatService,
		Mood:      moodService,
		Settings:  settingsService,
		Lock:      lockService,
		Export:    exportService,
		I18n:      i18nManager,
		SecretKey: "test-secret",
	})

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}
