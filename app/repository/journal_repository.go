package repository

import (
	"github.com/aquaworks/AquaDesk/app/models"
	"gorm.io/gorm"
)

// journalRepository implements the JournalRepository interface
type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new journal repository instance
func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) List(offset, limit int) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := r.db.Offset(offset).Limit(limit).Order("date ASC, id ASC").Find(&entries).Error
	return entries, err
}

func (r *journalRepository) ListByReference(refType string, refID uint) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := r.db.Where("reference_type = ? AND reference_id = ?", refType, refID).
		Order("id ASC").Find(&entries).Error
	return entries, err
}

func (r *journalRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.JournalEntry{}).Count(&count).Error
	return count, err
}
