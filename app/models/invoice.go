package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusUnpaid        = "unpaid"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusPartiallyPaid = "partially_paid"
)

// DueDays is how long after issue an invoice falls due.
const DueDays = 15

// Invoice is derived 1:1 from a Reading when the reading is recorded; it is
// never created on its own. Amount is this period's charge, Arrears the
// subscriber balance before the charge, TotalDue their sum.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ReadingID     uint            `gorm:"uniqueIndex;not null" json:"reading_id"`
	SubscriberID  uint            `gorm:"index;not null" json:"subscriber_id"`
	InvoiceNumber string          `gorm:"uniqueIndex;type:varchar(50);not null" json:"invoice_number"`
	Date          time.Time       `gorm:"type:date;not null" json:"date"`
	DueDate       time.Time       `gorm:"type:date;not null" json:"due_date"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Arrears       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"arrears"`
	TotalDue      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_due"`
	Status        string          `gorm:"type:varchar(20);default:'unpaid'" json:"status"`
	BranchID      uint            `gorm:"index" json:"branch_id"`
	PostingState
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TransactionDate reports the business date used by the period lock.
func (i *Invoice) TransactionDate() time.Time { return i.Date }

// Posting exposes the embedded posting state to the ledger engine.
func (i *Invoice) Posting() *PostingState { return &i.PostingState }
