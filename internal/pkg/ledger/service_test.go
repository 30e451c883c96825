package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/aquaworks/AquaDesk/app/models"
)

var (
	admin      = Actor{ID: 1, Role: models.ROLE_ADMIN}
	accountant = Actor{ID: 2, Role: models.ROLE_ACCOUNTANT}
	clerk      = Actor{ID: 3, Role: models.ROLE_CLERK}

	day = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
)

// fixture seeds a repository with one branch worth of master data: a flat
// rate plan (fixed fee 15, all units at 2.5), a subscriber with meter
// baseline 120 and zero balance, an empty fund and a collector.
func fixture(t *testing.T) (*Service, *memRepository, *models.Subscriber, *models.Fund) {
	t.Helper()
	repo := newMemRepository()

	plan := &models.RatePlan{
		ID:       1,
		Name:     "residential",
		FixedFee: decimal.NewFromInt(15),
		Tiers:    []models.PriceTier{{FromUnits: 0, ToUnits: nil, Price: decimal.NewFromFloat(2.5)}},
	}
	repo.plans[plan.ID] = plan

	sub := models.NewSubscriber("Ahmed Ali", "M-1001", 120, plan.ID, 1)
	assert.NoError(t, repo.SaveSubscriber(sub))

	fund := models.NewFund("Main till", "Ali", decimal.Zero, 1)
	assert.NoError(t, repo.SaveFund(fund))

	collector := &models.Collector{ID: 1, Name: "Mohammed", FundID: fund.ID, BranchID: 1}
	repo.collectors[collector.ID] = collector

	return NewService(repo), repo, sub, fund
}

func TestRecordReadingIssuesInvoice(t *testing.T) {
	svc, repo, sub, _ := fixture(t)

	reading, invoice, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID:   sub.ID,
		PeriodYear:     2025,
		PeriodMonth:    6,
		CurrentReading: 140,
		Date:           day,
		BranchID:       1,
	})
	assert.NoError(t, err)

	assert.EqualValues(t, 120, reading.PreviousReading)
	assert.EqualValues(t, 20, reading.Units)
	assert.True(t, reading.TotalAmount.Equal(decimal.NewFromInt(65)), "amount %s", reading.TotalAmount)
	assert.False(t, reading.IsPosted)

	assert.Equal(t, reading.ID, invoice.ReadingID)
	assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(65)))
	assert.True(t, invoice.Arrears.IsZero())
	assert.True(t, invoice.TotalDue.Equal(decimal.NewFromInt(65)))
	assert.Equal(t, day.AddDate(0, 0, 15), invoice.DueDate)
	assert.Equal(t, models.InvoiceStatusUnpaid, invoice.Status)

	assert.True(t, sub.Balance.Equal(decimal.NewFromInt(65)))
	assert.EqualValues(t, 140, sub.LastReading)

	// Balanced booking: subscriber debited, income credited.
	assert.Len(t, repo.journal, 2)
	assert.True(t, repo.journal[0].Debit.Equal(decimal.NewFromInt(65)))
	assert.Equal(t, models.AccountTypeSubscriber, repo.journal[0].AccountType)
	assert.True(t, repo.journal[1].Credit.Equal(decimal.NewFromInt(65)))
	assert.Equal(t, models.AccountTypeIncome, repo.journal[1].AccountType)
}

func TestRecordReadingCarriesArrears(t *testing.T) {
	svc, _, sub, _ := fixture(t)

	_, _, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 5, CurrentReading: 130, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	firstCharge := sub.Balance

	_, invoice, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 150, Date: day.AddDate(0, 1, 0), BranchID: 1,
	})
	assert.NoError(t, err)

	assert.True(t, invoice.Arrears.Equal(firstCharge), "arrears %s, want %s", invoice.Arrears, firstCharge)
	assert.True(t, invoice.TotalDue.Equal(invoice.Amount.Add(firstCharge)))
}

func TestRecordReadingBelowPrevious(t *testing.T) {
	svc, repo, sub, _ := fixture(t)

	_, _, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 100, Date: day, BranchID: 1,
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, repo.readings)
	assert.Empty(t, repo.journal)
	assert.True(t, sub.Balance.IsZero())
}

func TestRecordReadingDuplicatePeriod(t *testing.T) {
	svc, repo, sub, _ := fixture(t)

	_, _, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 140, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)

	_, _, err = svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 150, Date: day, BranchID: 1,
	})
	var derr *DuplicateBillingError
	assert.ErrorAs(t, err, &derr)
	assert.Equal(t, sub.ID, derr.SubscriberID)

	// Only one reading/invoice pair exists afterward.
	assert.Len(t, repo.readings, 1)
	assert.Len(t, repo.invoices, 1)
}

func TestRecordReceiptDoubleEntry(t *testing.T) {
	svc, repo, sub, fund := fixture(t)

	_, _, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 140, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)

	receipt, err := svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID,
		FundID:       fund.ID,
		CollectorID:  1,
		Amount:       decimal.NewFromInt(65),
		Method:       models.PaymentMethodCash,
		Reference:    "RC-100",
		Date:         day.AddDate(0, 0, 1),
		BranchID:     1,
	})
	assert.NoError(t, err)

	assert.True(t, sub.Balance.IsZero(), "balance %s", sub.Balance)
	assert.True(t, fund.Balance.Equal(decimal.NewFromInt(65)))

	// Double-entry symmetry for the receipt's reference id.
	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range repo.journal {
		if e.ReferenceType == models.RefTypeReceipt && e.ReferenceID == receipt.ID {
			debits = debits.Add(e.Debit)
			credits = credits.Add(e.Credit)
		}
	}
	assert.True(t, debits.Equal(receipt.Amount))
	assert.True(t, credits.Equal(receipt.Amount))
}

func TestRecordReceiptValidation(t *testing.T) {
	svc, _, sub, fund := fixture(t)

	_, err := svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.Zero, Method: models.PaymentMethodCash, Date: day, BranchID: 1,
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: 999, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(10), Method: models.PaymentMethodCash, Date: day, BranchID: 1,
	})
	var nerr *NotFoundError
	assert.ErrorAs(t, err, &nerr)
}

func TestRecordReceiptDuplicateReference(t *testing.T) {
	svc, _, sub, fund := fixture(t)

	in := ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(10), Method: models.PaymentMethodCash,
		Reference: "RC-1", Date: day, BranchID: 1,
	}
	_, err := svc.RecordReceipt(clerk, in)
	assert.NoError(t, err)

	_, err = svc.RecordReceipt(clerk, in)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRecordReceiptAllowsOverpayment(t *testing.T) {
	svc, _, sub, fund := fixture(t)

	_, err := svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(40), Method: models.PaymentMethodTransfer, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	assert.True(t, sub.Balance.Equal(decimal.NewFromInt(-40)), "overpayment leaves a credit balance, got %s", sub.Balance)
}

func TestRecordExpense(t *testing.T) {
	svc, repo, _, fund := fixture(t)
	fund.Balance = decimal.NewFromInt(100)

	expense, err := svc.RecordExpense(accountant, ExpenseInput{
		FundID:      fund.ID,
		Category:    "maintenance",
		Amount:      decimal.NewFromInt(30),
		Description: "valve replacement",
		Date:        day,
		BranchID:    1,
	})
	assert.NoError(t, err)
	assert.True(t, fund.Balance.Equal(decimal.NewFromInt(70)))

	var fundLeg, expenseLeg *models.JournalEntry
	for i := range repo.journal {
		e := &repo.journal[i]
		if e.ReferenceType != models.RefTypeExpense || e.ReferenceID != expense.ID {
			continue
		}
		switch e.AccountType {
		case models.AccountTypeFund:
			fundLeg = e
		case models.AccountTypeExpense:
			expenseLeg = e
		}
	}
	assert.NotNil(t, fundLeg)
	assert.NotNil(t, expenseLeg)
	assert.True(t, fundLeg.Credit.Equal(expense.Amount))
	assert.True(t, expenseLeg.Debit.Equal(expense.Amount))
}

func TestRecordExpenseUnknownSupplier(t *testing.T) {
	svc, _, _, fund := fixture(t)
	missing := uint(42)

	_, err := svc.RecordExpense(accountant, ExpenseInput{
		FundID: fund.ID, Category: "supplies", Amount: decimal.NewFromInt(5),
		SupplierID: &missing, Date: day, BranchID: 1,
	})
	var nerr *NotFoundError
	assert.ErrorAs(t, err, &nerr)
}

func TestRecordSettlementTypes(t *testing.T) {
	svc, _, sub, _ := fixture(t)
	sub.Balance = decimal.NewFromInt(50)

	_, err := svc.RecordSettlement(accountant, SettlementInput{
		SubscriberID: sub.ID, Type: models.SettlementCredit, Amount: decimal.NewFromInt(20),
		Description: "debt forgiven", Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	assert.True(t, sub.Balance.Equal(decimal.NewFromInt(30)))

	_, err = svc.RecordSettlement(accountant, SettlementInput{
		SubscriberID: sub.ID, Type: models.SettlementDebit, Amount: decimal.NewFromInt(5),
		Description: "penalty", Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	assert.True(t, sub.Balance.Equal(decimal.NewFromInt(35)))

	newReading := int64(10)
	_, err = svc.RecordSettlement(accountant, SettlementInput{
		SubscriberID: sub.ID, Type: models.SettlementMeterReset, NewReading: &newReading,
		Description: "meter replaced", Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	assert.True(t, sub.Balance.Equal(decimal.NewFromInt(35)), "meter reset must not touch the balance")
	assert.EqualValues(t, 10, sub.LastReading)
}

func TestMeterResetJournalsNothing(t *testing.T) {
	svc, repo, sub, _ := fixture(t)
	newReading := int64(0)

	_, err := svc.RecordSettlement(admin, SettlementInput{
		SubscriberID: sub.ID, Type: models.SettlementMeterReset, NewReading: &newReading, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	assert.Empty(t, repo.journal)
}

func TestSettlementValidation(t *testing.T) {
	svc, _, sub, _ := fixture(t)

	_, err := svc.RecordSettlement(clerk, SettlementInput{
		SubscriberID: sub.ID, Type: models.SettlementCredit, Amount: decimal.Zero, Date: day,
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.RecordSettlement(clerk, SettlementInput{
		SubscriberID: sub.ID, Type: models.SettlementMeterReset, Date: day,
	})
	assert.ErrorAs(t, err, &verr)

	_, err = svc.RecordSettlement(clerk, SettlementInput{
		SubscriberID: sub.ID, Type: "writeoff", Amount: decimal.NewFromInt(1), Date: day,
	})
	assert.ErrorAs(t, err, &verr)
}

// Balance conservation: over any history, the final balance equals invoices
// minus receipts plus/minus settlements by type.
func TestBalanceConservation(t *testing.T) {
	svc, _, sub, fund := fixture(t)

	_, inv1, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 5, CurrentReading: 140, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	_, inv2, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 160, Date: day.AddDate(0, 1, 0), BranchID: 1,
	})
	assert.NoError(t, err)

	r1, err := svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(50), Method: models.PaymentMethodCash, Date: day.AddDate(0, 1, 1), BranchID: 1,
	})
	assert.NoError(t, err)

	s1, err := svc.RecordSettlement(accountant, SettlementInput{
		SubscriberID: sub.ID, Type: models.SettlementCredit, Amount: decimal.NewFromInt(10), Date: day.AddDate(0, 1, 2), BranchID: 1,
	})
	assert.NoError(t, err)
	s2, err := svc.RecordSettlement(accountant, SettlementInput{
		SubscriberID: sub.ID, Type: models.SettlementDebit, Amount: decimal.NewFromInt(3), Date: day.AddDate(0, 1, 3), BranchID: 1,
	})
	assert.NoError(t, err)

	want := inv1.Amount.Add(inv2.Amount).Sub(r1.Amount).Sub(s1.Amount).Add(s2.Amount)
	assert.True(t, sub.Balance.Equal(want), "balance %s, want %s", sub.Balance, want)
}

// The journal as a whole stays balanced: total debits equal total credits.
func TestJournalGloballyBalanced(t *testing.T) {
	svc, repo, sub, fund := fixture(t)

	_, _, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 150, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	_, err = svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(30), Method: models.PaymentMethodCash, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	_, err = svc.RecordExpense(accountant, ExpenseInput{
		FundID: fund.ID, Category: "fuel", Amount: decimal.NewFromInt(12), Date: day, BranchID: 1,
	})
	assert.NoError(t, err)

	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range repo.journal {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	assert.True(t, debits.Equal(credits), "debits %s != credits %s", debits, credits)
}

// End-to-end scenario from a zero-balance subscriber through invoice and
// full payment.
func TestReadingThenReceiptScenario(t *testing.T) {
	svc, repo, sub, fund := fixture(t)

	_, invoice, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6,
		CurrentReading: sub.InitialReading + 20, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(65)))
	assert.True(t, invoice.Arrears.IsZero())
	assert.True(t, invoice.TotalDue.Equal(decimal.NewFromInt(65)))
	assert.True(t, sub.Balance.Equal(decimal.NewFromInt(65)))

	receipt, err := svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(65), Method: models.PaymentMethodCash, Date: day.AddDate(0, 0, 2), BranchID: 1,
	})
	assert.NoError(t, err)
	assert.True(t, sub.Balance.IsZero())
	assert.True(t, fund.Balance.Equal(decimal.NewFromInt(65)))

	receiptLegs := 0
	for _, e := range repo.journal {
		if e.ReferenceType == models.RefTypeReceipt && e.ReferenceID == receipt.ID {
			receiptLegs++
			assert.True(t, e.Debit.Add(e.Credit).Equal(decimal.NewFromInt(65)))
		}
	}
	assert.Equal(t, 2, receiptLegs)
}

func TestStatementSortedAscending(t *testing.T) {
	svc, _, sub, fund := fixture(t)

	_, _, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 140, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	_, err = svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(20), Method: models.PaymentMethodCash, Date: day.AddDate(0, 0, 5), BranchID: 1,
	})
	assert.NoError(t, err)

	entries, err := svc.Statement(sub.ID)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, models.AccountTypeSubscriber, e.AccountType)
		assert.Equal(t, sub.ID, e.AccountID)
	}
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.Before(entries[i-1].Date))
	}

	_, err = svc.Statement(999)
	var nerr *NotFoundError
	assert.ErrorAs(t, err, &nerr)
}
