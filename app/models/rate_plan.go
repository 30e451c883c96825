package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RatePlan is a subscription type: a flat per-period fee plus progressive
// price bands over consumption units.
type RatePlan struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	FixedFee  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"fixed_fee"`
	Tiers     []PriceTier     `gorm:"foreignKey:RatePlanID;constraint:OnDelete:CASCADE" json:"tiers" validate:"required,min=1,dive"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// PriceTier is one contiguous band of consumption units billed at a fixed
// per-unit price. A nil ToUnits means the band is unbounded.
type PriceTier struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	RatePlanID uint            `gorm:"index;not null" json:"rate_plan_id"`
	FromUnits  int64           `gorm:"not null" json:"from" validate:"gte=0"`
	ToUnits    *int64          `gorm:"default:null" json:"to"`
	Price      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
}

// Validate checks field constraints and tier-band hygiene. The billing engine
// trusts plans at calculation time, so misconfigured tiers must be caught here
// when the plan is saved.
func (p *RatePlan) Validate() error {
	v := validator.New()
	if err := v.Struct(p); err != nil {
		return err
	}
	return p.ValidateTiers()
}

// ValidateTiers enforces that tiers are sorted ascending, contiguous and
// gapless starting at zero, with exactly one open-ended tier which must come
// last.
func (p *RatePlan) ValidateTiers() error {
	if len(p.Tiers) == 0 {
		return fmt.Errorf("rate plan %q needs at least one price tier", p.Name)
	}

	expectedFrom := int64(0)
	for i, tier := range p.Tiers {
		if tier.FromUnits != expectedFrom {
			return fmt.Errorf("tier %d starts at %d, expected %d (tiers must be contiguous from 0)", i+1, tier.FromUnits, expectedFrom)
		}
		if tier.Price.IsNegative() {
			return fmt.Errorf("tier %d has a negative price", i+1)
		}
		if tier.ToUnits == nil {
			if i != len(p.Tiers)-1 {
				return fmt.Errorf("tier %d is open-ended but is not the last tier", i+1)
			}
			return nil
		}
		if *tier.ToUnits < tier.FromUnits {
			return fmt.Errorf("tier %d upper bound %d is below its lower bound %d", i+1, *tier.ToUnits, tier.FromUnits)
		}
		expectedFrom = *tier.ToUnits + 1
	}

	return fmt.Errorf("the last tier of rate plan %q must be open-ended", p.Name)
}
