package repository

import (
	"github.com/aquaworks/AquaDesk/app/models"
	"gorm.io/gorm"
)

// ratePlanRepository implements the RatePlanRepository interface
type ratePlanRepository struct {
	db *gorm.DB
}

// NewRatePlanRepository creates a new rate plan repository instance
func NewRatePlanRepository(db *gorm.DB) RatePlanRepository {
	return &ratePlanRepository{db: db}
}

// Create validates the tier ladder before persisting plan and tiers together.
func (r *ratePlanRepository) Create(plan *models.RatePlan) error {
	if err := plan.ValidateTiers(); err != nil {
		return err
	}
	return r.db.Create(plan).Error
}

func (r *ratePlanRepository) GetByID(id uint) (*models.RatePlan, error) {
	var plan models.RatePlan
	err := r.db.Preload("Tiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("from_units ASC")
	}).First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *ratePlanRepository) GetAll() ([]models.RatePlan, error) {
	var plans []models.RatePlan
	err := r.db.Preload("Tiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("from_units ASC")
	}).Order("id ASC").Find(&plans).Error
	return plans, err
}

// Update replaces the tier ladder wholesale so stale tiers never linger.
func (r *ratePlanRepository) Update(plan *models.RatePlan) error {
	if err := plan.ValidateTiers(); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rate_plan_id = ?", plan.ID).Delete(&models.PriceTier{}).Error; err != nil {
			return err
		}
		for i := range plan.Tiers {
			plan.Tiers[i].ID = 0
			plan.Tiers[i].RatePlanID = plan.ID
		}
		return tx.Save(plan).Error
	})
}

func (r *ratePlanRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rate_plan_id = ?", id).Delete(&models.PriceTier{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RatePlan{}, id).Error
	})
}

// InUse reports whether any subscriber is billed on this plan.
func (r *ratePlanRepository) InUse(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscriber{}).Where("rate_plan_id = ?", id).Count(&count).Error
	return count > 0, err
}
