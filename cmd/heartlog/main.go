package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/heartlogai/heartlog/internal/api"
	"github.com/heartlogai/heartlog/internal/generation"
	"github.com/heartlogai/heartlog/internal/i18n"
	"github.com/heartlogai/heartlog/internal/services"
	"github.com/heartlogai/heartlog/internal/store"
)

// localeResolver answers locale lookups in the language currently
// selected in settings.
type localeResolver struct {
	i18n     *i18n.Manager
	settings *services.SettingsService
}

func (resolver *localeResolver) Message(key string) string {
	return resolver.i18n.Message(resolver.settings.Language(), key)
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "heartlog.db"))
	port := getEnv("PORT", "8080")
	defaultLanguage := getEnv("DEFAULT_LANGUAGE", i18n.LangHI)
	apiKey := os.Getenv("COHERE_API_KEY")
	if apiKey == "" {
		log.Printf("COHERE_API_KEY is not set, chat replies will fail")
	}

	database, err := store.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	collections := store.NewStore(database)

	i18nManager, err := i18n.NewManager(defaultLanguage)
	if err != nil {
		log.Fatalf("i18n init failed: %v", err)
	}

	settingsService, err := services.NewSettingsService(collections, i18nManager)
	if err != nil {
		log.Fatalf("settings init failed: %v", err)
	}
	lockService := services.NewLockService(settingsService)

	journalService, err := services.NewJournalService(collections)
	if err != nil {
		log.Fatalf("journal init failed: %v", err)
	}

	generator := generation.NewClient(generation.Config{
		APIKey:  apiKey,
		BaseURL: getEnv("COHERE_API_URL", ""),
	})
	chatService, err := services.NewChatService(collections, generator, &localeResolver{
		i18n:     i18nManager,
		settings: settingsService,
	})
	if err != nil {
		log.Fatalf("chat init failed: %v", err)
	}

	moodService, err := services.NewMoodService(collections)
	if err != nil {
		log.Fatalf("mood init failed: %v", err)
	}

	exportService := services.NewExportService(journalService, chatService)

	handler := api.NewHandler(api.Config{
		Journal:      journalService,
		Chat:         chatService,
		Mood:         moodService,
		Settings:     settingsService,
		Lock:         lockService,
		Export:       exportService,
		I18n:         i18nManager,
		SecretKey:    secretKey,
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
	})

	app := fiber.New(fiber.Config{
		AppName:               "HeartLog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("HeartLog listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
