// Package history persists every suggestion the engine displays and whether
// the user accepted it. The log backs the accept-rate statistic and gives
// users a way to recover a suggestion they typed over.
package history

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

type SuggestionEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Filetype   string
	Suggestion string
	Accepted   bool
}

func NewStore(dbFilePath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&SuggestionEntry{}); err != nil {
		return nil, err
	}

	return &Store{
		db: db,
	}, nil
}

// Close closes the database connection. This should be called when the
// Store is no longer needed, especially in tests to allow cleanup of
// temporary database files on Windows.
func (store *Store) Close() error {
	sqlDB, err := store.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record logs a suggestion the moment it is displayed.
func (store *Store) Record(filetype string, suggestion string) (*SuggestionEntry, error) {
	entry := SuggestionEntry{
		Filetype:   filetype,
		Suggestion: suggestion,
	}

	result := store.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// MarkAccepted flags a previously recorded suggestion as accepted.
func (store *Store) MarkAccepted(entry *SuggestionEntry) error {
	entry.Accepted = true

	result := store.db.Save(entry)
	return result.Error
}

// RecentEntries returns the most recently displayed suggestions, newest
// first.
func (store *Store) RecentEntries(limit int) ([]SuggestionEntry, error) {
	var entries []SuggestionEntry
	result := store.db.Where("suggestion <> ''").Order("created_at desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// AcceptRate returns the fraction of displayed suggestions the user
// accepted, or 0 when nothing has been displayed yet.
func (store *Store) AcceptRate() (float64, error) {
	var total int64
	if err := store.db.Model(&SuggestionEntry{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var accepted int64
	if err := store.db.Model(&SuggestionEntry{}).Where("accepted = ?", true).Count(&accepted).Error; err != nil {
		return 0, err
	}

	return float64(accepted) / float64(total), nil
}
