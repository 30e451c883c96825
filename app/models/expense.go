package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cash outflow from a fund, categorized and optionally tied to a
// supplier. Recording one decreases the fund balance.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	FundID      uint            `gorm:"index;not null" json:"fund_id"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Description string          `gorm:"type:varchar(255)" json:"description"`
	Reference   string          `gorm:"type:varchar(50)" json:"reference"`
	SupplierID  *uint           `gorm:"index;default:null" json:"supplier_id,omitempty"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`
	BranchID    uint            `gorm:"index" json:"branch_id"`
	PostingState
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TransactionDate reports the business date used by the period lock.
func (e *Expense) TransactionDate() time.Time { return e.Date }

// Posting exposes the embedded posting state to the ledger engine.
func (e *Expense) Posting() *PostingState { return &e.PostingState }
