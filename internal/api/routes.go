package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	lock := api.Group("/lock")
	lock.Get("/status", handler.LockStatus)
	lock.Post("/unlock", handler.Unlock)
	lock.Post("/passcode", handler.LockRequired, handler.SetPasscode)
	lock.Delete("/passcode", handler.LockRequired, handler.RemovePasscode)

	journal := api.Group("/journal", handler.LockRequired)
	journal.Get("", handler.GetJournal)
	journal.Get("/search", handler.SearchJournal)
	journal.Post("", handler.CreateJournalEntry)
	journal.Put("/:id", handler.UpdateJournalEntry)
	journal.Delete("/all", handler.ClearJournal)
	journal.Delete("/:id", handler.DeleteJournalEntry)

	chat := api.Group("/chat", handler.LockRequired)
	chat.Get("", handler.GetChat)
	chat.Post("/send", handler.SendChatMessage)
	chat.Delete("", handler.ClearChat)

	mood := api.Group("/mood", handler.LockRequired)
	mood.Get("", handler.GetMoods)
	mood.Get("/options", handler.GetMoodOptions)
	mood.Post("", handler.SaveMood)
	mood.Delete("", handler.ClearMoods)

	settings := api.Group("/settings", handler.LockRequired)
	settings.Get("", handler.GetSettings)
	settings.Get("/language", handler.GetLanguage)
	settings.Post("/language", handler.SetLanguage)

	export := api.Group("/export", handler.LockRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
}
