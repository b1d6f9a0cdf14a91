package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/heartlogai/heartlog/internal/models"
)

const preferencesCollectionKey = "preferences"

var ErrPreferencesLoadFailed = errors.New("load preferences failed")

// LanguageNormalizer validates a language tag against the supported
// set, falling back to the default language.
type LanguageNormalizer interface {
	NormalizeLanguage(raw string) string
	DefaultLanguage() string
}

// LanguageListener observes language changes.
type LanguageListener func(language string)

// SettingsService owns the preferences document: the selected language
// and the app-lock passcode hash. Language changes go through an
// explicit observer list: every subscriber is notified synchronously,
// in registration order, before SetLanguage returns.
type SettingsService struct {
	mu          sync.Mutex
	store       CollectionStore
	languages   LanguageNormalizer
	preferences models.Preferences
	listeners   []LanguageListener
}

func NewSettingsService(store CollectionStore, languages LanguageNormalizer) (*SettingsService, error) {
	service := &SettingsService{
		store:     store,
		languages: languages,
	}

	raw, found, err := store.Load(preferencesCollectionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreferencesLoadFailed, err)
	}
	if !found {
		service.preferences = models.Preferences{Language: languages.DefaultLanguage()}
		if err := store.Save(preferencesCollectionKey, service.preferences); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPreferencesLoadFailed, err)
		}
		return service, nil
	}

	preferences := models.Preferences{}
	if err := json.Unmarshal(raw, &preferences); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreferencesLoadFailed, err)
	}
	preferences.Language = languages.NormalizeLanguage(preferences.Language)
	service.preferences = preferences
	return service, nil
}

func (service *SettingsService) Language() string {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.preferences.Language
}

// Subscribe registers a listener for language changes. Listeners are
// invoked in registration order.
func (service *SettingsService) Subscribe(listener LanguageListener) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.listeners = append(service.listeners, listener)
}

// SetLanguage normalizes, persists and broadcasts the new language.
// All listeners have run by the time SetLanguage returns; a storage
// failure is returned but does not suppress the broadcast.
func (service *SettingsService) SetLanguage(raw string) (string, error) {
	service.mu.Lock()
	language := service.languages.NormalizeLanguage(raw)
	service.preferences.Language = language
	err := service.persist()
	listeners := make([]LanguageListener, len(service.listeners))
	copy(listeners, service.listeners)
	service.mu.Unlock()

	for _, listener := range listeners {
		listener(language)
	}
	return language, err
}

func (service *SettingsService) PasscodeHash() string {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.preferences.PasscodeHash
}

func (service *SettingsService) SetPasscodeHash(hash string) error {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.preferences.PasscodeHash = hash
	return service.persist()
}

func (service *SettingsService) persist() error {
	return service.store.Save(preferencesCollectionKey, service.preferences)
}
