package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Collector is a field cashier; receipts are attributed to the collector who
// took the payment.
type Collector struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	FundID    uint      `gorm:"index" json:"fund_id"`
	BranchID  uint      `gorm:"index" json:"branch_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Collector) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
