package services

import (
	"encoding/json"
	"fmt"
)

// memoryCollectionStore keeps whole documents in a map, mirroring the
// persistent store's load/save contract.
type memoryCollectionStore struct {
	documents map[string]json.RawMessage
	saveErr   error
	saveCalls int
}

func newMemoryCollectionStore() *memoryCollectionStore {
	return &memoryCollectionStore{documents: map[string]json.RawMessage{}}
}

func (store *memoryCollectionStore) Load(key string) (json.RawMessage, bool, error) {
	raw, found := store.documents[key]
	return raw, found, nil
}

func (store *memoryCollectionStore) Save(key string, document any) error {
	store.saveCalls++
	if store.saveErr != nil {
		return store.saveErr
	}
	raw, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	store.documents[key] = raw
	return nil
}

type staticLocalizer struct{}

func (staticLocalizer) Message(key string) string {
	return "localized:" + key
}
