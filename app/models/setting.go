package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Setting keys used by the application.
const (
	SettingKeyInstitutionName = "institution_name"
	SettingKeyCurrency        = "currency"
	SettingKeyDefaultBranch   = "default_branch_id"
	SettingKeyLastClosedDate  = "last_closed_date"
)

// LastClosedDateLayout is the storage format of the period-close cutoff.
const LastClosedDateLayout = "2006-01-02"

// Setting represents a system setting stored as a key/value pair.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null;default:'string'" json:"type"` // string, date, integer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetSettingValue reads one setting; returns the empty string when unset.
func GetSettingValue(db *gorm.DB, key string) (string, error) {
	var setting Setting
	err := db.Where("setting_key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return setting.Value, nil
}

// SetSettingValue upserts one setting.
func SetSettingValue(db *gorm.DB, key, value, settingType string) error {
	var setting Setting
	err := db.Where("setting_key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = Setting{Key: key, Value: value, Type: settingType}
		if err := db.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to create setting %s: %w", key, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	setting.Value = value
	setting.Type = settingType
	if err := db.Save(&setting).Error; err != nil {
		return fmt.Errorf("failed to update setting %s: %w", key, err)
	}
	return nil
}
