package repository

import (
	"github.com/aquaworks/AquaDesk/app/models"
	"gorm.io/gorm"
)

// transactionRepository implements the TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// scoped narrows a query to one subscriber when an ID is given.
func scoped(db *gorm.DB, subscriberID uint) *gorm.DB {
	if subscriberID > 0 {
		return db.Where("subscriber_id = ?", subscriberID)
	}
	return db
}

func (r *transactionRepository) ListReadings(subscriberID uint, offset, limit int) ([]models.Reading, error) {
	var readings []models.Reading
	err := scoped(r.db, subscriberID).
		Offset(offset).Limit(limit).Order("date DESC, id DESC").Find(&readings).Error
	return readings, err
}

func (r *transactionRepository) GetReading(id uint) (*models.Reading, error) {
	var reading models.Reading
	if err := r.db.First(&reading, id).Error; err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *transactionRepository) ListInvoices(subscriberID uint, offset, limit int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := scoped(r.db, subscriberID).
		Offset(offset).Limit(limit).Order("date DESC, id DESC").Find(&invoices).Error
	return invoices, err
}

func (r *transactionRepository) GetInvoice(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.First(&invoice, id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *transactionRepository) ListReceipts(subscriberID uint, offset, limit int) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := scoped(r.db, subscriberID).
		Offset(offset).Limit(limit).Order("date DESC, id DESC").Find(&receipts).Error
	return receipts, err
}

func (r *transactionRepository) GetReceipt(id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.First(&receipt, id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *transactionRepository) ListExpenses(offset, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.Offset(offset).Limit(limit).Order("date DESC, id DESC").Find(&expenses).Error
	return expenses, err
}

func (r *transactionRepository) GetExpense(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *transactionRepository) ListSettlements(subscriberID uint, offset, limit int) ([]models.Settlement, error) {
	var settlements []models.Settlement
	err := scoped(r.db, subscriberID).
		Offset(offset).Limit(limit).Order("date DESC, id DESC").Find(&settlements).Error
	return settlements, err
}

func (r *transactionRepository) GetSettlement(id uint) (*models.Settlement, error) {
	var settlement models.Settlement
	if err := r.db.First(&settlement, id).Error; err != nil {
		return nil, err
	}
	return &settlement, nil
}
