package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Subscriber is a metered water customer. Balance is outstanding debt
// (positive = owes money) and only ever changes through invoice issuance,
// receipts or settlements — never by direct edits.
//
// LastReading is the effective meter baseline for the next consumption
// calculation: it starts at InitialReading, advances with every recorded
// reading and is replaced by a meter-reset settlement.
type Subscriber struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=3,max=150"`
	MeterNumber    string          `gorm:"uniqueIndex;type:varchar(50);not null" json:"meter_number" validate:"required,max=50"`
	Phone          string          `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	Email          string          `gorm:"type:varchar(200);default:null" json:"email,omitempty" validate:"omitempty,email"`
	Address        string          `gorm:"type:varchar(255)" json:"address" validate:"max=255"`
	Country        string          `gorm:"type:varchar(100)" json:"country" validate:"max=100"`
	Governorate    string          `gorm:"type:varchar(100)" json:"governorate" validate:"max=100"`
	Region         string          `gorm:"type:varchar(100)" json:"region" validate:"max=100"`
	DocType        string          `gorm:"type:varchar(50)" json:"doc_type" validate:"max=50"`
	DocNumber      string          `gorm:"type:varchar(50)" json:"doc_number" validate:"max=50"`
	DocIssueDate   string          `gorm:"type:varchar(20)" json:"doc_issue_date" validate:"max=20"`
	DocIssuePlace  string          `gorm:"type:varchar(100)" json:"doc_issue_place" validate:"max=100"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	Balance        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	InitialReading int64           `gorm:"not null;default:0" json:"initial_reading" validate:"gte=0"`
	LastReading    int64           `gorm:"not null;default:0" json:"last_reading"`
	RatePlanID     uint            `gorm:"index;not null" json:"rate_plan_id" validate:"required"`
	BranchID       uint            `gorm:"index" json:"branch_id"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (s *Subscriber) Validate() error {
	v := validator.New()

	return v.Struct(s)
}

// NewSubscriber builds a subscriber with a zero balance and the meter baseline
// set to the initial reading.
func NewSubscriber(name, meterNumber string, initialReading int64, ratePlanID, branchID uint) *Subscriber {
	return &Subscriber{
		Name:           name,
		MeterNumber:    meterNumber,
		Balance:        decimal.Zero,
		InitialReading: initialReading,
		LastReading:    initialReading,
		RatePlanID:     ratePlanID,
		BranchID:       branchID,
	}
}
