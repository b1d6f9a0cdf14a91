package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/heartlogai/heartlog/internal/models"
)

const journalCollectionKey = "journal_entries"

var (
	ErrJournalLoadFailed = errors.New("load journal collection failed")
	ErrEntryNotFound     = errors.New("journal entry not found")
)

// JournalPatch carries the fields an edit may change. Nil fields are
// left untouched; the entry date is always refreshed to the edit time.
type JournalPatch struct {
	Title   *string
	Content *string
	Mood    *string
}

// JournalService owns the journal collection: the in-memory list is
// the source of truth and every mutation writes the whole collection
// through the store before returning. A failed write is reported but
// the in-memory mutation stands.
type JournalService struct {
	mu      sync.Mutex
	store   CollectionStore
	entries []models.JournalEntry
	now     func() time.Time
}

func NewJournalService(store CollectionStore) (*JournalService, error) {
	service := &JournalService{
		store: store,
		now:   time.Now,
	}

	raw, found, err := store.Load(journalCollectionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJournalLoadFailed, err)
	}
	if !found {
		service.entries = journalSeed(service.now())
		if err := store.Save(journalCollectionKey, service.entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrJournalLoadFailed, err)
		}
		return service, nil
	}

	entries := make([]models.JournalEntry, 0)
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJournalLoadFailed, err)
	}
	service.entries = entries
	return service, nil
}

// journalSeed is the starter content a fresh journal is populated
// with, matching the original app's first-run entries.
func journalSeed(now time.Time) []models.JournalEntry {
	return []models.JournalEntry{
		{
			ID:      "1",
			Date:    now,
			Title:   "Morning Reflections",
			Content: "Today I woke up feeling grateful for the opportunities ahead...",
			Mood:    "😊",
		},
		{
			ID:      "2",
			Date:    now.Add(-24 * time.Hour),
			Title:   "Evening Thoughts",
			Content: "Reflecting on the day, I realize how much I've grown...",
			Mood:    "🤔",
		},
	}
}

func (service *JournalService) Entries() []models.JournalEntry {
	service.mu.Lock()
	defer service.mu.Unlock()
	return copyJournalEntries(service.entries)
}

// Add validates, creates and persists a new entry. On a storage
// failure the new entry is still returned along with the error.
func (service *JournalService) Add(title string, content string, mood string) (models.JournalEntry, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return models.JournalEntry{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if content == "" {
		return models.JournalEntry{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	entry := models.JournalEntry{
		ID:      newRecordID(service.now(), service.idTaken),
		Date:    service.now(),
		Title:   title,
		Content: content,
		Mood:    strings.TrimSpace(mood),
	}
	service.entries = append([]models.JournalEntry{entry}, service.entries...)
	return entry, service.persist()
}

// Update edits an entry in place and refreshes its date.
func (service *JournalService) Update(id string, patch JournalPatch) (models.JournalEntry, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.JournalEntry{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return models.JournalEntry{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	for index := range service.entries {
		if service.entries[index].ID != id {
			continue
		}

		entry := &service.entries[index]
		if patch.Title != nil {
			entry.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Content != nil {
			entry.Content = strings.TrimSpace(*patch.Content)
		}
		if patch.Mood != nil {
			entry.Mood = strings.TrimSpace(*patch.Mood)
		}
		entry.Date = service.now()
		return *entry, service.persist()
	}

	return models.JournalEntry{}, ErrEntryNotFound
}

func (service *JournalService) Remove(id string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	for index := range service.entries {
		if service.entries[index].ID != id {
			continue
		}
		service.entries = append(service.entries[:index], service.entries[index+1:]...)
		return service.persist()
	}
	return ErrEntryNotFound
}

// Clear empties the collection. The journal does not re-seed: cleared
// means cleared until the stored key disappears entirely.
func (service *JournalService) Clear() error {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.entries = []models.JournalEntry{}
	return service.persist()
}

// Search returns entries whose title or content contains query,
// case-insensitively. Pure read over the in-memory list.
func (service *JournalService) Search(query string) []models.JournalEntry {
	query = strings.ToLower(strings.TrimSpace(query))

	service.mu.Lock()
	defer service.mu.Unlock()

	if query == "" {
		return copyJournalEntries(service.entries)
	}

	matched := make([]models.JournalEntry, 0)
	for _, entry := range service.entries {
		if strings.Contains(strings.ToLower(entry.Title), query) ||
			strings.Contains(strings.ToLower(entry.Content), query) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// FilterByMood returns entries tagged with exactly the given mood.
func (service *JournalService) FilterByMood(mood string) []models.JournalEntry {
	mood = strings.TrimSpace(mood)

	service.mu.Lock()
	defer service.mu.Unlock()

	matched := make([]models.JournalEntry, 0)
	for _, entry := range service.entries {
		if entry.Mood == mood {
			matched = append(matched, entry)
		}
	}
	return matched
}

func (service *JournalService) persist() error {
	return service.store.Save(journalCollectionKey, service.entries)
}

func (service *JournalService) idTaken(id string) bool {
	for _, entry := range service.entries {
		if entry.ID == id {
			return true
		}
	}
	return false
}

func copyJournalEntries(entries []models.JournalEntry) []models.JournalEntry {
	result := make([]models.JournalEntry, len(entries))
	copy(result, entries)
	return result
}
