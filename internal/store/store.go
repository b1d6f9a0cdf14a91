package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageError reports a failed read or write against the collections
// table. The in-memory state of the calling manager is already mutated
// when a save fails; callers surface the error instead of rolling back.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (err *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", err.Op, err.Key, err.Err)
}

func (err *StorageError) Unwrap() error {
	return err.Err
}

// Collection is one persisted collection document: the full JSON
// serialization of a collection, keyed by its logical name. Each key
// is saved independently; there is no cross-key transaction.
type Collection struct {
	Key       string `gorm:"primaryKey"`
	Data      string `gorm:"not null"`
	UpdatedAt time.Time
}

func (Collection) TableName() string {
	return "collections"
}

type Store struct {
	database *gorm.DB
}

func NewStore(database *gorm.DB) *Store {
	return &Store{database: database}
}

// Load returns the raw JSON document for key, or found=false when the
// key has never been saved.
func (store *Store) Load(key string) (json.RawMessage, bool, error) {
	record := Collection{}
	result := store.database.Where("key = ?", key).Limit(1).Find(&record)
	if result.Error != nil {
		return nil, false, &StorageError{Op: "load", Key: key, Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return json.RawMessage(record.Data), true, nil
}

// Save serializes document and writes it durably under key, replacing
// any previous document for that key.
func (store *Store) Save(key string, document any) error {
	data, err := json.Marshal(document)
	if err != nil {
		return &StorageError{Op: "save", Key: key, Err: err}
	}

	record := Collection{Key: key, Data: string(data), UpdatedAt: time.Now()}
	result := store.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record)
	if result.Error != nil {
		return &StorageError{Op: "save", Key: key, Err: result.Error}
	}
	return nil
}

// Clear removes the document for key entirely; a subsequent Load
// reports the key as absent.
func (store *Store) Clear(key string) error {
	if err := store.database.Where("key = ?", key).Delete(&Collection{}).Error; err != nil {
		return &StorageError{Op: "clear", Key: key, Err: err}
	}
	return nil
}
