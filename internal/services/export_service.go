package services

import (
	"time"

	"github.com/heartlogai/heartlog/internal/models"
)

const exportDateLayout = "2006-01-02 15:04"

var ExportCSVHeaders = []string{"Date", "Title", "Mood", "Content"}

// ExportJournalReader and ExportChatReader are the read-only views the
// export needs.
type ExportJournalReader interface {
	Entries() []models.JournalEntry
}

type ExportChatReader interface {
	Messages() []models.ChatMessage
}

// ExportDocument is the user-facing backup: the full journal and chat
// collections plus the moment the export was produced. Read-only; the
// app never imports it back.
type ExportDocument struct {
	ExportedAt time.Time             `json:"exportedAt"`
	Journal    []models.JournalEntry `json:"journal"`
	Chat       []models.ChatMessage  `json:"chat"`
}

type ExportService struct {
	journal ExportJournalReader
	chat    ExportChatReader
	now     func() time.Time
}

func NewExportService(journal ExportJournalReader, chat ExportChatReader) *ExportService {
	return &ExportService{
		journal: journal,
		chat:    chat,
		now:     time.Now,
	}
}

func (service *ExportService) BuildDocument() ExportDocument {
	return ExportDocument{
		ExportedAt: service.now(),
		Journal:    service.journal.Entries(),
		Chat:       service.chat.Messages(),
	}
}

// BuildJournalCSVRows renders the journal as CSV rows, header first.
func (service *ExportService) BuildJournalCSVRows() [][]string {
	entries := service.journal.Entries()
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, ExportCSVHeaders)
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.Date.Format(exportDateLayout),
			entry.Title,
			entry.Mood,
			entry.Content,
		})
	}
	return rows
}
