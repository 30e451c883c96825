package repository

import (
	"strings"

	"github.com/aquaworks/AquaDesk/app/models"
	"gorm.io/gorm"
)

// subscriberRepository implements the SubscriberRepository interface
type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository instance
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(subscriber *models.Subscriber) error {
	return r.db.Create(subscriber).Error
}

func (r *subscriberRepository) GetByID(id uint) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	if err := r.db.First(&subscriber, id).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *subscriberRepository) GetByMeterNumber(meterNumber string) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	if err := r.db.Where("meter_number = ?", meterNumber).First(&subscriber).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *subscriberRepository) Update(subscriber *models.Subscriber) error {
	return r.db.Save(subscriber).Error
}

func (r *subscriberRepository) Delete(id uint) error {
	return r.db.Delete(&models.Subscriber{}, id).Error
}

func (r *subscriberRepository) List(offset, limit int) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := r.db.Offset(offset).Limit(limit).Order("id ASC").Find(&subscribers).Error
	return subscribers, err
}

func (r *subscriberRepository) ListByBranch(branchID uint, offset, limit int) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := r.db.Where("branch_id = ?", branchID).
		Offset(offset).Limit(limit).Order("id ASC").Find(&subscribers).Error
	return subscribers, err
}

// Search matches subscriber name or meter number, case insensitive.
func (r *subscriberRepository) Search(query string) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	pattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.Where("name LIKE ? OR meter_number LIKE ?", pattern, pattern).
		Order("id ASC").Find(&subscribers).Error
	return subscribers, err
}

func (r *subscriberRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscriber{}).Count(&count).Error
	return count, err
}
