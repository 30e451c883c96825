package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Supplier is a vendor that expenses can optionally be tied to.
type Supplier struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	ContactPerson string          `gorm:"type:varchar(150)" json:"contact_person" validate:"max=150"`
	Phone         string          `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	Email         string          `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email"`
	Address       string          `gorm:"type:varchar(255)" json:"address" validate:"max=255"`
	PaymentTerms  string          `gorm:"type:varchar(100)" json:"payment_terms" validate:"max=100"`
	Balance       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	BranchID      uint            `gorm:"index" json:"branch_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Supplier) Validate() error {
	v := validator.New()

	return v.Struct(s)
}
