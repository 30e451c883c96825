package ledger

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aquaworks/AquaDesk/app/models"
)

// EntityKind tags the transactional entity types the posting state machine
// operates on. Dispatch is an explicit switch per kind, never a generic
// table-name lookup.
type EntityKind string

const (
	KindReading    EntityKind = "readings"
	KindInvoice    EntityKind = "invoices"
	KindReceipt    EntityKind = "receipts"
	KindExpense    EntityKind = "expenses"
	KindSettlement EntityKind = "settlements"
)

// ParseEntityKind validates a kind string from the transport layer.
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case KindReading, KindInvoice, KindReceipt, KindExpense, KindSettlement:
		return EntityKind(s), nil
	}
	return "", validationf("kind", "unknown transaction kind %q", s)
}

// Transactional is implemented by every entity the posting state machine
// governs.
type Transactional interface {
	TransactionDate() time.Time
	Posting() *models.PostingState
}

// Repository provides the persistence operations the ledger engine needs.
// The engine depends on this interface only; production wires the GORM
// implementation, tests an in-memory fake.
type Repository interface {
	// Transaction runs fn atomically; every mutation inside either commits as
	// one unit or not at all.
	Transaction(fn func(Repository) error) error

	GetSubscriber(id uint) (*models.Subscriber, error)
	SaveSubscriber(sub *models.Subscriber) error
	GetFund(id uint) (*models.Fund, error)
	SaveFund(fund *models.Fund) error
	GetRatePlan(id uint) (*models.RatePlan, error)
	GetCollector(id uint) (*models.Collector, error)
	GetSupplier(id uint) (*models.Supplier, error)

	ReadingExists(subscriberID uint, year, month int) (bool, error)
	ReceiptReferenceExists(reference string) (bool, error)
	CreateReading(r *models.Reading) error
	CreateInvoice(inv *models.Invoice) error
	CreateReceipt(r *models.Receipt) error
	CreateExpense(e *models.Expense) error
	CreateSettlement(s *models.Settlement) error
	InvoiceByReading(readingID uint) (*models.Invoice, error)

	AppendJournal(entry *models.JournalEntry) error
	JournalForAccount(accountID uint, accountType string) ([]models.JournalEntry, error)

	FindTransaction(kind EntityKind, id uint) (Transactional, error)
	SaveTransaction(kind EntityKind, t Transactional) error
	DeleteTransaction(kind EntityKind, id uint) error

	LastClosedDate() (*time.Time, error)
	SetLastClosedDate(date time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a ledger repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

// GetSubscriber locks the row for update so concurrent balance mutations
// serialize per subscriber.
func (r *gormRepository) GetSubscriber(id uint) (*models.Subscriber, error) {
	var sub models.Subscriber
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "subscriber", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) SaveSubscriber(sub *models.Subscriber) error {
	return r.db.Save(sub).Error
}

// GetFund locks the row for update, same as GetSubscriber.
func (r *gormRepository) GetFund(id uint) (*models.Fund, error) {
	var fund models.Fund
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&fund, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "fund", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &fund, nil
}

func (r *gormRepository) SaveFund(fund *models.Fund) error {
	return r.db.Save(fund).Error
}

func (r *gormRepository) GetRatePlan(id uint) (*models.RatePlan, error) {
	var plan models.RatePlan
	err := r.db.Preload("Tiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("from_units ASC")
	}).First(&plan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "rate plan", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) GetCollector(id uint) (*models.Collector, error) {
	var collector models.Collector
	err := r.db.First(&collector, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "collector", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &collector, nil
}

func (r *gormRepository) GetSupplier(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.First(&supplier, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "supplier", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *gormRepository) ReadingExists(subscriberID uint, year, month int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reading{}).
		Where("subscriber_id = ? AND period_year = ? AND period_month = ?", subscriberID, year, month).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) ReceiptReferenceExists(reference string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Receipt{}).Where("reference = ?", reference).Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) CreateReading(reading *models.Reading) error {
	return r.db.Create(reading).Error
}

func (r *gormRepository) CreateInvoice(inv *models.Invoice) error {
	return r.db.Create(inv).Error
}

func (r *gormRepository) CreateReceipt(receipt *models.Receipt) error {
	return r.db.Create(receipt).Error
}

func (r *gormRepository) CreateExpense(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

func (r *gormRepository) CreateSettlement(settlement *models.Settlement) error {
	return r.db.Create(settlement).Error
}

func (r *gormRepository) InvoiceByReading(readingID uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.Where("reading_id = ?", readingID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "invoice", ID: readingID}
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *gormRepository) AppendJournal(entry *models.JournalEntry) error {
	return r.db.Create(entry).Error
}

func (r *gormRepository) JournalForAccount(accountID uint, accountType string) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := r.db.
		Where("account_id = ? AND account_type = ?", accountID, accountType).
		Order("date ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *gormRepository) FindTransaction(kind EntityKind, id uint) (Transactional, error) {
	var (
		t   Transactional
		err error
	)
	switch kind {
	case KindReading:
		var m models.Reading
		err = r.db.First(&m, id).Error
		t = &m
	case KindInvoice:
		var m models.Invoice
		err = r.db.First(&m, id).Error
		t = &m
	case KindReceipt:
		var m models.Receipt
		err = r.db.First(&m, id).Error
		t = &m
	case KindExpense:
		var m models.Expense
		err = r.db.First(&m, id).Error
		t = &m
	case KindSettlement:
		var m models.Settlement
		err = r.db.First(&m, id).Error
		t = &m
	default:
		return nil, validationf("kind", "unknown transaction kind %q", kind)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: string(kind), ID: id}
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *gormRepository) SaveTransaction(kind EntityKind, t Transactional) error {
	switch kind {
	case KindReading, KindInvoice, KindReceipt, KindExpense, KindSettlement:
		return r.db.Save(t).Error
	}
	return validationf("kind", "unknown transaction kind %q", kind)
}

func (r *gormRepository) DeleteTransaction(kind EntityKind, id uint) error {
	switch kind {
	case KindReading:
		return r.db.Delete(&models.Reading{}, id).Error
	case KindInvoice:
		return r.db.Delete(&models.Invoice{}, id).Error
	case KindReceipt:
		return r.db.Delete(&models.Receipt{}, id).Error
	case KindExpense:
		return r.db.Delete(&models.Expense{}, id).Error
	case KindSettlement:
		return r.db.Delete(&models.Settlement{}, id).Error
	}
	return validationf("kind", "unknown transaction kind %q", kind)
}

func (r *gormRepository) LastClosedDate() (*time.Time, error) {
	value, err := models.GetSettingValue(r.db, models.SettingKeyLastClosedDate)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(models.LastClosedDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (r *gormRepository) SetLastClosedDate(date time.Time) error {
	return models.SetSettingValue(r.db, models.SettingKeyLastClosedDate, date.Format(models.LastClosedDateLayout), "date")
}
