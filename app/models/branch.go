package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Branch is an organizational unit; every subscriber, fund and transaction
// belongs to one.
type Branch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Location  string    `gorm:"type:varchar(255)" json:"location" validate:"max=255"`
	Manager   string    `gorm:"type:varchar(150)" json:"manager" validate:"max=150"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Branch) Validate() error {
	v := validator.New()

	return v.Struct(b)
}
