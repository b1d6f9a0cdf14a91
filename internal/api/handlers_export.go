package api

import (
	"bytes"
	"encoding/csv"

	"github.com/gofiber/fiber/v2"
)

// ExportJSON hands back everything the app stores as one document.
// Browsers get it as a download; API clients asking for JSON get it
// inline.
func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	document := handler.export.BuildDocument()
	if !acceptsJSON(c) {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="heartlog-export.json"`)
	}
	return c.JSON(document)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)
	if err := writer.WriteAll(handler.export.BuildJournalCSVRows()); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="heartlog-journal.csv"`)
	return c.Send(buffer.Bytes())
}
