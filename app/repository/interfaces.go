package repository

import (
	"github.com/aquaworks/AquaDesk/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// SubscriberRepository defines the interface for subscriber account operations
type SubscriberRepository interface {
	Create(subscriber *models.Subscriber) error
	GetByID(id uint) (*models.Subscriber, error)
	GetByMeterNumber(meterNumber string) (*models.Subscriber, error)
	Update(subscriber *models.Subscriber) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Subscriber, error)
	ListByBranch(branchID uint, offset, limit int) ([]models.Subscriber, error)
	Search(query string) ([]models.Subscriber, error)
	Count() (int64, error)
}

// RatePlanRepository defines the interface for tariff plan operations
type RatePlanRepository interface {
	Create(plan *models.RatePlan) error
	GetByID(id uint) (*models.RatePlan, error)
	GetAll() ([]models.RatePlan, error)
	Update(plan *models.RatePlan) error
	Delete(id uint) error
	InUse(id uint) (bool, error)
}

// BranchRepository defines the interface for branch office operations
type BranchRepository interface {
	Create(branch *models.Branch) error
	GetByID(id uint) (*models.Branch, error)
	GetAll() ([]models.Branch, error)
	Update(branch *models.Branch) error
	Delete(id uint) error
}

// FundRepository defines the interface for cash fund operations
type FundRepository interface {
	Create(fund *models.Fund) error
	GetByID(id uint) (*models.Fund, error)
	GetAll() ([]models.Fund, error)
	Update(fund *models.Fund) error
	Delete(id uint) error
}

// CollectorRepository defines the interface for field collector operations
type CollectorRepository interface {
	Create(collector *models.Collector) error
	GetByID(id uint) (*models.Collector, error)
	GetAll() ([]models.Collector, error)
	Update(collector *models.Collector) error
	Delete(id uint) error
}

// SupplierRepository defines the interface for supplier operations
type SupplierRepository interface {
	Create(supplier *models.Supplier) error
	GetByID(id uint) (*models.Supplier, error)
	GetAll() ([]models.Supplier, error)
	Update(supplier *models.Supplier) error
	Delete(id uint) error
}

// TransactionRepository lists the transactional records for browsing screens.
// Mutations go through the ledger service, never through this interface.
type TransactionRepository interface {
	ListReadings(subscriberID uint, offset, limit int) ([]models.Reading, error)
	GetReading(id uint) (*models.Reading, error)
	ListInvoices(subscriberID uint, offset, limit int) ([]models.Invoice, error)
	GetInvoice(id uint) (*models.Invoice, error)
	ListReceipts(subscriberID uint, offset, limit int) ([]models.Receipt, error)
	GetReceipt(id uint) (*models.Receipt, error)
	ListExpenses(offset, limit int) ([]models.Expense, error)
	GetExpense(id uint) (*models.Expense, error)
	ListSettlements(subscriberID uint, offset, limit int) ([]models.Settlement, error)
	GetSettlement(id uint) (*models.Settlement, error)
}

// JournalRepository reads the append-only journal for reporting screens.
type JournalRepository interface {
	List(offset, limit int) ([]models.JournalEntry, error)
	ListByReference(refType string, refID uint) ([]models.JournalEntry, error)
	Count() (int64, error)
}

// SettingRepository defines the interface for key/value settings
type SettingRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Subscriber  SubscriberRepository
	RatePlan    RatePlanRepository
	Branch      BranchRepository
	Fund        FundRepository
	Collector   CollectorRepository
	Supplier    SupplierRepository
	Transaction TransactionRepository
	Journal     JournalRepository
	Setting     SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Subscriber:  NewSubscriberRepository(db),
		RatePlan:    NewRatePlanRepository(db),
		Branch:      NewBranchRepository(db),
		Fund:        NewFundRepository(db),
		Collector:   NewCollectorRepository(db),
		Supplier:    NewSupplierRepository(db),
		Transaction: NewTransactionRepository(db),
		Journal:     NewJournalRepository(db),
		Setting:     NewSettingRepository(db),
	}
}
