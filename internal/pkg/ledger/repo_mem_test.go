package ledger

import (
	"time"

	"github.com/aquaworks/AquaDesk/app/models"
)

// memRepository is an in-memory Repository used by the engine tests. The
// engine performs all precondition checks before mutating, so the fake does
// not need rollback.
type memRepository struct {
	subscribers map[uint]*models.Subscriber
	funds       map[uint]*models.Fund
	plans       map[uint]*models.RatePlan
	collectors  map[uint]*models.Collector
	suppliers   map[uint]*models.Supplier
	readings    map[uint]*models.Reading
	invoices    map[uint]*models.Invoice
	receipts    map[uint]*models.Receipt
	expenses    map[uint]*models.Expense
	settlements map[uint]*models.Settlement
	journal     []models.JournalEntry
	closedDate  *time.Time
	nextID      uint
}

func newMemRepository() *memRepository {
	return &memRepository{
		subscribers: map[uint]*models.Subscriber{},
		funds:       map[uint]*models.Fund{},
		plans:       map[uint]*models.RatePlan{},
		collectors:  map[uint]*models.Collector{},
		suppliers:   map[uint]*models.Supplier{},
		readings:    map[uint]*models.Reading{},
		invoices:    map[uint]*models.Invoice{},
		receipts:    map[uint]*models.Receipt{},
		expenses:    map[uint]*models.Expense{},
		settlements: map[uint]*models.Settlement{},
	}
}

func (m *memRepository) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memRepository) Transaction(fn func(Repository) error) error {
	return fn(m)
}

func (m *memRepository) GetSubscriber(id uint) (*models.Subscriber, error) {
	sub, ok := m.subscribers[id]
	if !ok {
		return nil, &NotFoundError{Entity: "subscriber", ID: id}
	}
	return sub, nil
}

func (m *memRepository) SaveSubscriber(sub *models.Subscriber) error {
	if sub.ID == 0 {
		sub.ID = m.id()
	}
	m.subscribers[sub.ID] = sub
	return nil
}

func (m *memRepository) GetFund(id uint) (*models.Fund, error) {
	fund, ok := m.funds[id]
	if !ok {
		return nil, &NotFoundError{Entity: "fund", ID: id}
	}
	return fund, nil
}

func (m *memRepository) SaveFund(fund *models.Fund) error {
	if fund.ID == 0 {
		fund.ID = m.id()
	}
	m.funds[fund.ID] = fund
	return nil
}

func (m *memRepository) GetRatePlan(id uint) (*models.RatePlan, error) {
	plan, ok := m.plans[id]
	if !ok {
		return nil, &NotFoundError{Entity: "rate plan", ID: id}
	}
	return plan, nil
}

func (m *memRepository) GetCollector(id uint) (*models.Collector, error) {
	collector, ok := m.collectors[id]
	if !ok {
		return nil, &NotFoundError{Entity: "collector", ID: id}
	}
	return collector, nil
}

func (m *memRepository) GetSupplier(id uint) (*models.Supplier, error) {
	supplier, ok := m.suppliers[id]
	if !ok {
		return nil, &NotFoundError{Entity: "supplier", ID: id}
	}
	return supplier, nil
}

func (m *memRepository) ReadingExists(subscriberID uint, year, month int) (bool, error) {
	for _, r := range m.readings {
		if r.SubscriberID == subscriberID && r.PeriodYear == year && r.PeriodMonth == month {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepository) ReceiptReferenceExists(reference string) (bool, error) {
	for _, r := range m.receipts {
		if r.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepository) CreateReading(r *models.Reading) error {
	r.ID = m.id()
	m.readings[r.ID] = r
	return nil
}

func (m *memRepository) CreateInvoice(inv *models.Invoice) error {
	inv.ID = m.id()
	m.invoices[inv.ID] = inv
	return nil
}

func (m *memRepository) CreateReceipt(r *models.Receipt) error {
	r.ID = m.id()
	m.receipts[r.ID] = r
	return nil
}

func (m *memRepository) CreateExpense(e *models.Expense) error {
	e.ID = m.id()
	m.expenses[e.ID] = e
	return nil
}

func (m *memRepository) CreateSettlement(s *models.Settlement) error {
	s.ID = m.id()
	m.settlements[s.ID] = s
	return nil
}

func (m *memRepository) InvoiceByReading(readingID uint) (*models.Invoice, error) {
	for _, inv := range m.invoices {
		if inv.ReadingID == readingID {
			return inv, nil
		}
	}
	return nil, &NotFoundError{Entity: "invoice", ID: readingID}
}

func (m *memRepository) AppendJournal(entry *models.JournalEntry) error {
	entry.ID = m.id()
	m.journal = append(m.journal, *entry)
	return nil
}

func (m *memRepository) JournalForAccount(accountID uint, accountType string) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	for _, e := range m.journal {
		if e.AccountID == accountID && e.AccountType == accountType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memRepository) FindTransaction(kind EntityKind, id uint) (Transactional, error) {
	switch kind {
	case KindReading:
		if r, ok := m.readings[id]; ok {
			return r, nil
		}
	case KindInvoice:
		if inv, ok := m.invoices[id]; ok {
			return inv, nil
		}
	case KindReceipt:
		if r, ok := m.receipts[id]; ok {
			return r, nil
		}
	case KindExpense:
		if e, ok := m.expenses[id]; ok {
			return e, nil
		}
	case KindSettlement:
		if s, ok := m.settlements[id]; ok {
			return s, nil
		}
	}
	return nil, &NotFoundError{Entity: string(kind), ID: id}
}

func (m *memRepository) SaveTransaction(kind EntityKind, t Transactional) error {
	// Entities are stored by pointer, mutations are already visible.
	return nil
}

func (m *memRepository) DeleteTransaction(kind EntityKind, id uint) error {
	switch kind {
	case KindReading:
		delete(m.readings, id)
	case KindInvoice:
		delete(m.invoices, id)
	case KindReceipt:
		delete(m.receipts, id)
	case KindExpense:
		delete(m.expenses, id)
	case KindSettlement:
		delete(m.settlements, id)
	}
	return nil
}

func (m *memRepository) LastClosedDate() (*time.Time, error) {
	return m.closedDate, nil
}

func (m *memRepository) SetLastClosedDate(date time.Time) error {
	m.closedDate = &date
	return nil
}
