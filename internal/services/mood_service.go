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

const moodCollectionKey = "mood_entries"

const moodDayLayout = "2006-01-02"

var ErrMoodLoadFailed = errors.New("load mood collection failed")

// MoodService owns the mood collection. The invariant is one entry per
// calendar day: saving a day that already has an entry replaces it in
// place, a new day is prepended.
type MoodService struct {
	mu      sync.Mutex
	store   CollectionStore
	entries []models.MoodEntry
}

func NewMoodService(store CollectionStore) (*MoodService, error) {
	service := &MoodService{store: store}

	raw, found, err := store.Load(moodCollectionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMoodLoadFailed, err)
	}
	if !found {
		service.entries = []models.MoodEntry{}
		if err := store.Save(moodCollectionKey, service.entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMoodLoadFailed, err)
		}
		return service, nil
	}

	entries := make([]models.MoodEntry, 0)
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMoodLoadFailed, err)
	}
	service.entries = entries
	return service, nil
}

func (service *MoodService) Entries() []models.MoodEntry {
	service.mu.Lock()
	defer service.mu.Unlock()

	result := make([]models.MoodEntry, len(service.entries))
	copy(result, service.entries)
	return result
}

// Save records the mood for one calendar day. When the day already has
// an entry the new values replace it without moving its position in
// the list. An empty emoji is filled from the mood catalog.
func (service *MoodService) Save(day time.Time, mood string, emoji string, note string) (models.MoodEntry, error) {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return models.MoodEntry{}, fmt.Errorf("%w: mood is required", ErrValidation)
	}
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		emoji = models.MoodEmoji(mood)
	}

	entry := models.MoodEntry{
		Date:  day.Format(moodDayLayout),
		Mood:  mood,
		Emoji: emoji,
		Note:  strings.TrimSpace(note),
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	for index := range service.entries {
		if service.entries[index].Date == entry.Date {
			service.entries[index] = entry
			return entry, service.persist()
		}
	}

	service.entries = append([]models.MoodEntry{entry}, service.entries...)
	return entry, service.persist()
}

// ByDay returns the entry for one calendar day, if any.
func (service *MoodService) ByDay(day time.Time) (models.MoodEntry, bool) {
	key := day.Format(moodDayLayout)

	service.mu.Lock()
	defer service.mu.Unlock()

	for _, entry := range service.entries {
		if entry.Date == key {
			return entry, true
		}
	}
	return models.MoodEntry{}, false
}

func (service *MoodService) Clear() error {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.entries = []models.MoodEntry{}
	return service.persist()
}

func (service *MoodService) persist() error {
	return service.store.Save(moodCollectionKey, service.entries)
}
