package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SettlementCredit     = "credit"
	SettlementDebit      = "debit"
	SettlementMeterReset = "meter_reset"
)

// Settlement is a manual adjustment to a subscriber account: credit forgives
// debt, debit adds debt, meter_reset replaces the meter baseline without any
// monetary effect.
type Settlement struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SubscriberID uint            `gorm:"index;not null" json:"subscriber_id"`
	Type         string          `gorm:"type:varchar(20);not null" json:"type"`
	Amount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
	NewReading   *int64          `gorm:"default:null" json:"new_reading,omitempty"`
	Description  string          `gorm:"type:varchar(255)" json:"description"`
	Date         time.Time       `gorm:"type:date;not null" json:"date"`
	BranchID     uint            `gorm:"index" json:"branch_id"`
	PostingState
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TransactionDate reports the business date used by the period lock.
func (s *Settlement) TransactionDate() time.Time { return s.Date }

// Posting exposes the embedded posting state to the ledger engine.
func (s *Settlement) Posting() *PostingState { return &s.PostingState }
