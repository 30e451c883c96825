package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types a journal entry can be booked against. Control accounts
// (income, expense) use AccountID 0; the type alone identifies them.
const (
	AccountTypeSubscriber = "subscriber"
	AccountTypeFund       = "fund"
	AccountTypeSupplier   = "supplier"
	AccountTypeIncome     = "income"
	AccountTypeExpense    = "expense"
)

// Reference types linking a journal entry back to its business transaction.
const (
	RefTypeInvoice    = "invoice"
	RefTypeReceipt    = "receipt"
	RefTypeExpense    = "expense"
	RefTypeSettlement = "settlement"
)

// JournalEntry is one leg of a double-entry booking. The journal is the
// append-only audit trail: entries are never updated or deleted, corrections
// are new offsetting entries.
type JournalEntry struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Date          time.Time       `gorm:"type:date;not null;index" json:"date"`
	ReferenceID   uint            `gorm:"not null;index:ix_journal_reference,priority:2" json:"reference_id"`
	ReferenceType string          `gorm:"type:varchar(20);not null;index:ix_journal_reference,priority:1" json:"reference_type"`
	Description   string          `gorm:"type:varchar(255)" json:"description"`
	Debit         decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"debit"`
	Credit        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"credit"`
	AccountID     uint            `gorm:"not null;index:ix_journal_account,priority:2" json:"account_id"`
	AccountType   string          `gorm:"type:varchar(20);not null;index:ix_journal_account,priority:1" json:"account_type"`
	BranchID      uint            `gorm:"index" json:"branch_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
