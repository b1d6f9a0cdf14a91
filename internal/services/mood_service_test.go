package services

import (
	"errors"
	"testing"
	"time"
)

func newTestMoodService(t *testing.T, store CollectionStore) *MoodService {
	t.Helper()
	service, err := NewMoodService(store)
	if err != nil {
		t.Fatalf("NewMoodService failed: %v", err)
	}
	return service
}

func TestMoodStartsEmpty(t *testing.T) {
	store := newMemoryCollectionStore()
	service := newTestMoodService(t, store)

	if len(service.Entries()) != 0 {
		t.Fatalf("a fresh mood collection must be empty")
	}
	if _, found := store.documents[moodCollectionKey]; !found {
		t.Fatalf("expected the empty collection to be persisted")
	}
}

func TestMoodSavePrependsNewDay(t *testing.T) {
	service := newTestMoodService(t, newMemoryCollectionStore())
	yesterday := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	today := yesterday.Add(24 * time.Hour)

	if _, err := service.Save(yesterday, "Sad", "", "rough day"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	entry, err := service.Save(today, "Happy", "", "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if entry.Date != "2026-08-31" {
		t.Fatalf("expected day key 2026-08-31, got %q", entry.Date)
	}

	entries := service.Entries()
	if len(entries) != 2 || entries[0].Mood != "Happy" {
		t.Fatalf("expected the newer day first, got %+v", entries)
	}
}

func TestMoodSaveSameDayReplacesInPlace(t *testing.T) {
	service := newTestMoodService(t, newMemoryCollectionStore())
	dayOne := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	dayTwo := dayOne.Add(24 * time.Hour)

	if _, err := service.Save(dayOne, "Calm", "", ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := service.Save(dayTwo, "Happy", "", ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Same calendar day, later wall clock.
	if _, err := service.Save(dayOne.Add(8*time.Hour), "Anxious", "", "changed my mind"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries := service.Entries()
	if len(entries) != 2 {
		t.Fatalf("one entry per day, got %d entries", len(entries))
	}
	if entries[1].Mood != "Anxious" || entries[1].Note != "changed my mind" {
		t.Fatalf("expected the replacement values, got %+v", entries[1])
	}
	if entries[0].Mood != "Happy" {
		t.Fatalf("replacement must keep the entry's position, got %+v", entries)
	}
}

func TestMoodSaveFillsEmojiFromCatalog(t *testing.T) {
	service := newTestMoodService(t, newMemoryCollectionStore())

	entry, err := service.Save(time.Now(), "Grateful", "", "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if entry.Emoji != "🙏" {
		t.Fatalf("expected the catalog emoji, got %q", entry.Emoji)
	}

	entry, err = service.Save(time.Now(), "Grateful", "✨", "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if entry.Emoji != "✨" {
		t.Fatalf("an explicit emoji must win over the catalog, got %q", entry.Emoji)
	}
}

func TestMoodSaveValidation(t *testing.T) {
	service := newTestMoodService(t, newMemoryCollectionStore())

	if _, err := service.Save(time.Now(), "   ", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank mood, got %v", err)
	}
}

func TestMoodByDay(t *testing.T) {
	service := newTestMoodService(t, newMemoryCollectionStore())
	day := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	if _, err := service.Save(day, "Excited", "", ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entry, found := service.ByDay(day.Add(-14 * time.Hour))
	if !found || entry.Mood != "Excited" {
		t.Fatalf("expected a hit for any time within the day, got %+v found=%v", entry, found)
	}
	if _, found := service.ByDay(day.Add(24 * time.Hour)); found {
		t.Fatalf("expected no entry for the next day")
	}
}

func TestMoodClear(t *testing.T) {
	service := newTestMoodService(t, newMemoryCollectionStore())
	if _, err := service.Save(time.Now(), "Happy", "", ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := service.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if len(service.Entries()) != 0 {
		t.Fatalf("expected empty collection after clear")
	}
}
