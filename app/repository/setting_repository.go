package repository

import (
	"github.com/aquaworks/AquaDesk/app/models"
	"gorm.io/gorm"
)

// settingRepository implements the SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(key string) (string, error) {
	return models.GetSettingValue(r.db, key)
}

func (r *settingRepository) Set(key, value string) error {
	return models.SetSettingValue(r.db, key, value, "string")
}
