package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Fund is a named cash pool (till or bank account). Its balance should always
// equal openingBalance + receipts in − expenses out; the ledger engine
// preserves this, it is not a database constraint.
type Fund struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	BranchID       uint            `gorm:"index" json:"branch_id"`
	Manager        string          `gorm:"type:varchar(150)" json:"manager" validate:"max=150"`
	Balance        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"opening_balance"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (f *Fund) Validate() error {
	v := validator.New()

	return v.Struct(f)
}

// NewFund builds a fund whose current balance starts at the opening balance.
// The opening balance is fixed at creation.
func NewFund(name, manager string, opening decimal.Decimal, branchID uint) *Fund {
	return &Fund{
		Name:           name,
		Manager:        manager,
		Balance:        opening,
		OpeningBalance: opening,
		BranchID:       branchID,
	}
}
