package repository

import (
	"github.com/aquaworks/AquaDesk/app/models"
	"gorm.io/gorm"
)

// The directory repositories cover the small lookup entities that back
// the transactional records. They share the same simple CRUD shape.

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository instance
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(branch *models.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepository) GetByID(id uint) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) GetAll() ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.Order("id ASC").Find(&branches).Error
	return branches, err
}

func (r *branchRepository) Update(branch *models.Branch) error {
	return r.db.Save(branch).Error
}

func (r *branchRepository) Delete(id uint) error {
	return r.db.Delete(&models.Branch{}, id).Error
}

type fundRepository struct {
	db *gorm.DB
}

// NewFundRepository creates a new fund repository instance
func NewFundRepository(db *gorm.DB) FundRepository {
	return &fundRepository{db: db}
}

func (r *fundRepository) Create(fund *models.Fund) error {
	return r.db.Create(fund).Error
}

func (r *fundRepository) GetByID(id uint) (*models.Fund, error) {
	var fund models.Fund
	if err := r.db.First(&fund, id).Error; err != nil {
		return nil, err
	}
	return &fund, nil
}

func (r *fundRepository) GetAll() ([]models.Fund, error) {
	var funds []models.Fund
	err := r.db.Order("id ASC").Find(&funds).Error
	return funds, err
}

func (r *fundRepository) Update(fund *models.Fund) error {
	return r.db.Save(fund).Error
}

func (r *fundRepository) Delete(id uint) error {
	return r.db.Delete(&models.Fund{}, id).Error
}

type collectorRepository struct {
	db *gorm.DB
}

// NewCollectorRepository creates a new collector repository instance
func NewCollectorRepository(db *gorm.DB) CollectorRepository {
	return &collectorRepository{db: db}
}

func (r *collectorRepository) Create(collector *models.Collector) error {
	return r.db.Create(collector).Error
}

func (r *collectorRepository) GetByID(id uint) (*models.Collector, error) {
	var collector models.Collector
	if err := r.db.First(&collector, id).Error; err != nil {
		return nil, err
	}
	return &collector, nil
}

func (r *collectorRepository) GetAll() ([]models.Collector, error) {
	var collectors []models.Collector
	err := r.db.Order("id ASC").Find(&collectors).Error
	return collectors, err
}

func (r *collectorRepository) Update(collector *models.Collector) error {
	return r.db.Save(collector).Error
}

func (r *collectorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Collector{}, id).Error
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository instance
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepository) GetByID(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) GetAll() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.Order("id ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *supplierRepository) Delete(id uint) error {
	return r.db.Delete(&models.Supplier{}, id).Error
}
