package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ReadingStatusPending  = "pending"
	ReadingStatusInvoiced = "invoiced"
	ReadingStatusPaid     = "paid"
)

// Reading is one meter reading for a subscriber in a billing period. At most
// one reading may exist per (subscriber, year, month); the ledger engine
// enforces this at creation. Units and TotalAmount are derived and stored.
type Reading struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	SubscriberID    uint            `gorm:"not null;index:ux_readings_subscriber_period,unique,priority:1" json:"subscriber_id"`
	PeriodYear      int             `gorm:"not null;index:ux_readings_subscriber_period,unique,priority:2" json:"period_year"`
	PeriodMonth     int             `gorm:"not null;index:ux_readings_subscriber_period,unique,priority:3" json:"period_month"`
	PreviousReading int64           `gorm:"not null" json:"previous_reading"`
	CurrentReading  int64           `gorm:"not null" json:"current_reading"`
	Units           int64           `gorm:"not null" json:"units"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	Date            time.Time       `gorm:"type:date;not null" json:"date"`
	Status          string          `gorm:"type:varchar(20);default:'pending'" json:"status"`
	BranchID        uint            `gorm:"index" json:"branch_id"`
	PostingState
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TransactionDate reports the business date used by the period lock.
func (r *Reading) TransactionDate() time.Time { return r.Date }

// Posting exposes the embedded posting state to the ledger engine.
func (r *Reading) Posting() *PostingState { return &r.PostingState }
