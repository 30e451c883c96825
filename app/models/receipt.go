package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCheck    = "check"
)

// Receipt is a payment collected from a subscriber into a fund, attributed to
// the collector who took it. Recording one decreases the subscriber balance
// and increases the fund balance by the same amount.
type Receipt struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	SubscriberID  uint            `gorm:"index;not null" json:"subscriber_id"`
	CollectorID   uint            `gorm:"index;not null" json:"collector_id"`
	FundID        uint            `gorm:"index;not null" json:"fund_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	Description   string          `gorm:"type:varchar(255)" json:"description"`
	Reference     string          `gorm:"uniqueIndex;type:varchar(50);not null" json:"reference"`
	Date          time.Time       `gorm:"type:date;not null" json:"date"`
	BranchID      uint            `gorm:"index" json:"branch_id"`
	PostingState
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TransactionDate reports the business date used by the period lock.
func (r *Receipt) TransactionDate() time.Time { return r.Date }

// Posting exposes the embedded posting state to the ledger engine.
func (r *Receipt) Posting() *PostingState { return &r.PostingState }
