package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aquaworks/AquaDesk/app/models"
)

// Service is the ledger/balance engine: it translates one business event into
// entity mutations plus balanced journal entries, atomically. All precondition
// checks run before any mutation; an error means nothing was written.
type Service struct {
	repo Repository
}

// NewService creates a ledger service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a ledger service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// ReadingInput carries a meter-reading entry request.
type ReadingInput struct {
	SubscriberID   uint
	PeriodYear     int
	PeriodMonth    int
	CurrentReading int64
	Date           time.Time
	BranchID       uint
}

// ReceiptInput carries a payment-collection request. An empty Reference gets a
// generated one.
type ReceiptInput struct {
	SubscriberID uint
	FundID       uint
	CollectorID  uint
	Amount       decimal.Decimal
	Method       string
	Description  string
	Reference    string
	Date         time.Time
	BranchID     uint
}

// ExpenseInput carries a cash-outflow request.
type ExpenseInput struct {
	FundID      uint
	Category    string
	Amount      decimal.Decimal
	Description string
	Reference   string
	SupplierID  *uint
	Date        time.Time
	BranchID    uint
}

// SettlementInput carries a manual balance adjustment or meter reset.
type SettlementInput struct {
	SubscriberID uint
	Type         string
	Amount       decimal.Decimal
	NewReading   *int64
	Description  string
	Date         time.Time
	BranchID     uint
}

// RecordReading enters a meter reading, derives its invoice, charges the
// subscriber and journals the charge. Exactly one reading may exist per
// subscriber and period; the current reading must not fall below the
// subscriber's effective meter baseline.
func (s *Service) RecordReading(actor Actor, in ReadingInput) (*models.Reading, *models.Invoice, error) {
	if err := actor.require(ActionRecord); err != nil {
		return nil, nil, err
	}
	if in.PeriodMonth < 1 || in.PeriodMonth > 12 {
		return nil, nil, validationf("period_month", "month %d out of range", in.PeriodMonth)
	}
	if in.PeriodYear < 1900 {
		return nil, nil, validationf("period_year", "year %d out of range", in.PeriodYear)
	}

	var (
		reading *models.Reading
		invoice *models.Invoice
	)
	err := s.repo.Transaction(func(repo Repository) error {
		if err := guardOpenPeriod(repo, in.Date); err != nil {
			return err
		}
		exists, err := repo.ReadingExists(in.SubscriberID, in.PeriodYear, in.PeriodMonth)
		if err != nil {
			return err
		}
		if exists {
			return &DuplicateBillingError{SubscriberID: in.SubscriberID, Year: in.PeriodYear, Month: in.PeriodMonth}
		}

		sub, err := repo.GetSubscriber(in.SubscriberID)
		if err != nil {
			return err
		}
		previous := sub.LastReading
		if in.CurrentReading < previous {
			return validationf("current_reading", "current reading %d below previous %d", in.CurrentReading, previous)
		}
		plan, err := repo.GetRatePlan(sub.RatePlanID)
		if err != nil {
			return err
		}

		units := in.CurrentReading - previous
		total := CalculateCost(units, plan)
		arrears := sub.Balance

		reading = &models.Reading{
			SubscriberID:    sub.ID,
			PeriodYear:      in.PeriodYear,
			PeriodMonth:     in.PeriodMonth,
			PreviousReading: previous,
			CurrentReading:  in.CurrentReading,
			Units:           units,
			TotalAmount:     total,
			Date:            in.Date,
			Status:          models.ReadingStatusInvoiced,
			BranchID:        in.BranchID,
		}
		if err := repo.CreateReading(reading); err != nil {
			return err
		}

		invoice = &models.Invoice{
			ReadingID:     reading.ID,
			SubscriberID:  sub.ID,
			InvoiceNumber: newInvoiceNumber(),
			Date:          in.Date,
			DueDate:       in.Date.AddDate(0, 0, models.DueDays),
			Amount:        total,
			Arrears:       arrears,
			TotalDue:      total.Add(arrears),
			Status:        models.InvoiceStatusUnpaid,
			BranchID:      in.BranchID,
		}
		if err := repo.CreateInvoice(invoice); err != nil {
			return err
		}

		sub.Balance = sub.Balance.Add(total)
		sub.LastReading = in.CurrentReading
		if err := repo.SaveSubscriber(sub); err != nil {
			return err
		}

		desc := fmt.Sprintf("Water consumption invoice %s - subscriber %s", invoice.InvoiceNumber, sub.Name)
		return appendPair(repo, journalPair{
			date:     in.Date,
			refID:    invoice.ID,
			refType:  models.RefTypeInvoice,
			amount:   total,
			branchID: in.BranchID,
			debit:    account{id: sub.ID, accountType: models.AccountTypeSubscriber, description: desc},
			credit:   account{accountType: models.AccountTypeIncome, description: "Water revenue - " + invoice.InvoiceNumber},
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return reading, invoice, nil
}

// RecordReceipt collects a payment from a subscriber into a fund. The
// subscriber balance decreases and the fund balance increases by the amount;
// overpayment is allowed and leaves a credit (negative) balance.
func (s *Service) RecordReceipt(actor Actor, in ReceiptInput) (*models.Receipt, error) {
	if err := actor.require(ActionRecord); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, validationf("amount", "amount must be positive")
	}
	switch in.Method {
	case models.PaymentMethodCash, models.PaymentMethodTransfer, models.PaymentMethodCheck:
	default:
		return nil, validationf("payment_method", "unknown payment method %q", in.Method)
	}

	reference := strings.TrimSpace(in.Reference)
	if reference == "" {
		reference = newReceiptReference()
	}

	var receipt *models.Receipt
	err := s.repo.Transaction(func(repo Repository) error {
		if err := guardOpenPeriod(repo, in.Date); err != nil {
			return err
		}
		taken, err := repo.ReceiptReferenceExists(reference)
		if err != nil {
			return err
		}
		if taken {
			return validationf("reference", "receipt reference %q already used", reference)
		}

		sub, err := repo.GetSubscriber(in.SubscriberID)
		if err != nil {
			return err
		}
		fund, err := repo.GetFund(in.FundID)
		if err != nil {
			return err
		}
		if _, err := repo.GetCollector(in.CollectorID); err != nil {
			return err
		}

		receipt = &models.Receipt{
			SubscriberID:  sub.ID,
			CollectorID:   in.CollectorID,
			FundID:        fund.ID,
			Amount:        in.Amount,
			PaymentMethod: in.Method,
			Description:   in.Description,
			Reference:     reference,
			Date:          in.Date,
			BranchID:      in.BranchID,
		}
		if err := repo.CreateReceipt(receipt); err != nil {
			return err
		}

		sub.Balance = sub.Balance.Sub(in.Amount)
		if err := repo.SaveSubscriber(sub); err != nil {
			return err
		}
		fund.Balance = fund.Balance.Add(in.Amount)
		if err := repo.SaveFund(fund); err != nil {
			return err
		}

		return appendPair(repo, journalPair{
			date:     in.Date,
			refID:    receipt.ID,
			refType:  models.RefTypeReceipt,
			amount:   in.Amount,
			branchID: in.BranchID,
			debit:    account{id: fund.ID, accountType: models.AccountTypeFund, description: "Cash collection - receipt " + reference},
			credit:   account{id: sub.ID, accountType: models.AccountTypeSubscriber, description: "Invoice payment - receipt " + reference},
		})
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// RecordExpense pays a categorized expense out of a fund.
func (s *Service) RecordExpense(actor Actor, in ExpenseInput) (*models.Expense, error) {
	if err := actor.require(ActionRecord); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, validationf("amount", "amount must be positive")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, validationf("category", "category is required")
	}

	var expense *models.Expense
	err := s.repo.Transaction(func(repo Repository) error {
		if err := guardOpenPeriod(repo, in.Date); err != nil {
			return err
		}
		fund, err := repo.GetFund(in.FundID)
		if err != nil {
			return err
		}
		if in.SupplierID != nil {
			if _, err := repo.GetSupplier(*in.SupplierID); err != nil {
				return err
			}
		}

		expense = &models.Expense{
			FundID:      fund.ID,
			Category:    in.Category,
			Amount:      in.Amount,
			Description: in.Description,
			Reference:   in.Reference,
			SupplierID:  in.SupplierID,
			Date:        in.Date,
			BranchID:    in.BranchID,
		}
		if err := repo.CreateExpense(expense); err != nil {
			return err
		}

		fund.Balance = fund.Balance.Sub(in.Amount)
		if err := repo.SaveFund(fund); err != nil {
			return err
		}

		return appendPair(repo, journalPair{
			date:     in.Date,
			refID:    expense.ID,
			refType:  models.RefTypeExpense,
			amount:   in.Amount,
			branchID: in.BranchID,
			debit:    account{accountType: models.AccountTypeExpense, description: in.Category + " expense: " + in.Description},
			credit:   account{id: fund.ID, accountType: models.AccountTypeFund, description: "Disbursement: " + in.Description},
		})
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// RecordSettlement applies a manual adjustment: credit forgives subscriber
// debt, debit adds debt, meter_reset replaces the meter baseline without
// touching the balance or the journal.
func (s *Service) RecordSettlement(actor Actor, in SettlementInput) (*models.Settlement, error) {
	if err := actor.require(ActionRecord); err != nil {
		return nil, err
	}
	switch in.Type {
	case models.SettlementCredit, models.SettlementDebit:
		if !in.Amount.IsPositive() {
			return nil, validationf("amount", "amount must be positive")
		}
	case models.SettlementMeterReset:
		if in.NewReading == nil {
			return nil, validationf("new_reading", "meter reset requires a new reading")
		}
		if *in.NewReading < 0 {
			return nil, validationf("new_reading", "new reading must not be negative")
		}
		in.Amount = decimal.Zero
	default:
		return nil, validationf("type", "unknown settlement type %q", in.Type)
	}

	var settlement *models.Settlement
	err := s.repo.Transaction(func(repo Repository) error {
		if err := guardOpenPeriod(repo, in.Date); err != nil {
			return err
		}
		sub, err := repo.GetSubscriber(in.SubscriberID)
		if err != nil {
			return err
		}

		settlement = &models.Settlement{
			SubscriberID: sub.ID,
			Type:         in.Type,
			Amount:       in.Amount,
			NewReading:   in.NewReading,
			Description:  in.Description,
			Date:         in.Date,
			BranchID:     in.BranchID,
		}
		if err := repo.CreateSettlement(settlement); err != nil {
			return err
		}

		switch in.Type {
		case models.SettlementCredit:
			sub.Balance = sub.Balance.Sub(in.Amount)
		case models.SettlementDebit:
			sub.Balance = sub.Balance.Add(in.Amount)
		case models.SettlementMeterReset:
			sub.LastReading = *in.NewReading
		}
		if err := repo.SaveSubscriber(sub); err != nil {
			return err
		}

		if in.Type == models.SettlementMeterReset {
			return nil
		}

		desc := "Account settlement: " + in.Description
		pair := journalPair{
			date:     in.Date,
			refID:    settlement.ID,
			refType:  models.RefTypeSettlement,
			amount:   in.Amount,
			branchID: in.BranchID,
		}
		if in.Type == models.SettlementDebit {
			pair.debit = account{id: sub.ID, accountType: models.AccountTypeSubscriber, description: desc}
			pair.credit = account{accountType: models.AccountTypeIncome, description: desc}
		} else {
			pair.debit = account{accountType: models.AccountTypeIncome, description: desc}
			pair.credit = account{id: sub.ID, accountType: models.AccountTypeSubscriber, description: desc}
		}
		return appendPair(repo, pair)
	})
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

// Statement returns the subscriber's journal entries sorted by date ascending.
// The caller computes the running balance.
func (s *Service) Statement(subscriberID uint) ([]models.JournalEntry, error) {
	if _, err := s.repo.GetSubscriber(subscriberID); err != nil {
		return nil, err
	}
	return s.repo.JournalForAccount(subscriberID, models.AccountTypeSubscriber)
}

// FundLedger returns a fund's journal entries sorted by date ascending.
func (s *Service) FundLedger(fundID uint) ([]models.JournalEntry, error) {
	if _, err := s.repo.GetFund(fundID); err != nil {
		return nil, err
	}
	return s.repo.JournalForAccount(fundID, models.AccountTypeFund)
}

// account is one side of a double-entry booking.
type account struct {
	id          uint
	accountType string
	description string
}

// journalPair is a balanced debit/credit booking for one business event.
type journalPair struct {
	date     time.Time
	refID    uint
	refType  string
	amount   decimal.Decimal
	branchID uint
	debit    account
	credit   account
}

// appendPair writes both legs of a booking. Debits and credits attributable to
// one reference id always sum to the same amount.
func appendPair(repo Repository, p journalPair) error {
	if err := repo.AppendJournal(&models.JournalEntry{
		Date:          p.date,
		ReferenceID:   p.refID,
		ReferenceType: p.refType,
		Description:   p.debit.description,
		Debit:         p.amount,
		Credit:        decimal.Zero,
		AccountID:     p.debit.id,
		AccountType:   p.debit.accountType,
		BranchID:      p.branchID,
	}); err != nil {
		return err
	}
	return repo.AppendJournal(&models.JournalEntry{
		Date:          p.date,
		ReferenceID:   p.refID,
		ReferenceType: p.refType,
		Description:   p.credit.description,
		Debit:         decimal.Zero,
		Credit:        p.amount,
		AccountID:     p.credit.id,
		AccountType:   p.credit.accountType,
		BranchID:      p.branchID,
	})
}

func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}

func newReceiptReference() string {
	return "RC-" + strings.ToUpper(uuid.NewString()[:8])
}
