package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/aquaworks/AquaDesk/app/models"
)

// CalculateCost prices consumption against a rate plan: the plan's fixed fee
// plus a progressive walk over the price bands. Each tier holds
// to-from+1 units (bounds inclusive); units fill tiers in ascending order at
// that tier's per-unit price until none remain.
//
// The plan is trusted as stored — tier hygiene is enforced when plans are
// saved (models.RatePlan.ValidateTiers), not here. Pure and deterministic.
func CalculateCost(units int64, plan *models.RatePlan) decimal.Decimal {
	cost := plan.FixedFee
	remaining := units

	for _, tier := range plan.Tiers {
		if remaining <= 0 {
			break
		}
		inTier := remaining
		if tier.ToUnits != nil {
			capacity := *tier.ToUnits - tier.FromUnits + 1
			if capacity < inTier {
				inTier = capacity
			}
		}
		if inTier <= 0 {
			break
		}
		cost = cost.Add(tier.Price.Mul(decimal.NewFromInt(inTier)))
		remaining -= inTier
	}

	return cost
}
