package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/aquaworks/AquaDesk/app/models"
)

func recordOneReading(t *testing.T, svc *Service, sub *models.Subscriber) *models.Reading {
	t.Helper()
	reading, _, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 140, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	return reading
}

func TestPostStampsRecord(t *testing.T) {
	svc, _, sub, _ := fixture(t)
	reading := recordOneReading(t, svc, sub)

	assert.NoError(t, svc.Post(accountant, KindReading, reading.ID))
	assert.True(t, reading.IsPosted)
	assert.NotNil(t, reading.PostedAt)
	assert.Equal(t, accountant.ID, *reading.PostedBy)

	// Posting twice is rejected.
	err := svc.Post(accountant, KindReading, reading.ID)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPostRequiresPostingRights(t *testing.T) {
	svc, _, sub, _ := fixture(t)
	reading := recordOneReading(t, svc, sub)

	err := svc.Post(clerk, KindReading, reading.ID)
	var perr *PermissionError
	assert.ErrorAs(t, err, &perr)
	assert.False(t, reading.IsPosted)
}

func TestUnpostAdminOnly(t *testing.T) {
	svc, _, sub, _ := fixture(t)
	reading := recordOneReading(t, svc, sub)
	assert.NoError(t, svc.Post(accountant, KindReading, reading.ID))

	var perr *PermissionError
	assert.ErrorAs(t, svc.Unpost(accountant, KindReading, reading.ID), &perr)
	assert.True(t, reading.IsPosted)

	assert.NoError(t, svc.Unpost(admin, KindReading, reading.ID))
	assert.False(t, reading.IsPosted)
	assert.Nil(t, reading.PostedBy)
}

func TestDeletePostedRecordNeedsAdmin(t *testing.T) {
	svc, repo, sub, _ := fixture(t)
	reading := recordOneReading(t, svc, sub)
	assert.NoError(t, svc.Post(accountant, KindReading, reading.ID))

	err := svc.DeleteTransaction(clerk, KindReading, reading.ID)
	var perr *PermissionError
	assert.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "posted")
	assert.Len(t, repo.readings, 1)

	// Admin unposts, then delete succeeds.
	assert.NoError(t, svc.Unpost(admin, KindReading, reading.ID))
	assert.NoError(t, svc.DeleteTransaction(admin, KindReading, reading.ID))
	assert.Empty(t, repo.readings)
	assert.Empty(t, repo.invoices)
}

// The period lock outranks the posting flag: a posted record outside the
// closed period yields to an admin, a draft record inside it yields to no one.
func TestPeriodLockPrecedence(t *testing.T) {
	svc, _, sub, _ := fixture(t)
	reading := recordOneReading(t, svc, sub)
	assert.NoError(t, svc.Post(accountant, KindReading, reading.ID))

	// Posted, period open: admin may modify.
	assert.NoError(t, svc.AuthorizeModify(admin, KindReading, reading.ID))

	// Close the period at the reading's date; even after unposting, nobody
	// may modify, admin included.
	assert.NoError(t, svc.ClosePeriod(admin, day))
	assert.NoError(t, svc.Unpost(admin, KindReading, reading.ID))

	err := svc.AuthorizeModify(admin, KindReading, reading.ID)
	var perr *PermissionError
	assert.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "closed")

	err = svc.DeleteTransaction(admin, KindReading, reading.ID)
	assert.ErrorAs(t, err, &perr)
}

func TestClosePeriodAdminOnly(t *testing.T) {
	svc, _, _, _ := fixture(t)

	var perr *PermissionError
	assert.ErrorAs(t, svc.ClosePeriod(accountant, day), &perr)

	assert.NoError(t, svc.ClosePeriod(admin, day))
	closed, err := svc.LastClosedDate()
	assert.NoError(t, err)
	assert.True(t, closed.Equal(day))

	// Moving the cutoff backward is an allowed admin override.
	earlier := day.AddDate(0, -1, 0)
	assert.NoError(t, svc.ClosePeriod(admin, earlier))
	closed, err = svc.LastClosedDate()
	assert.NoError(t, err)
	assert.True(t, closed.Equal(earlier))
}

func TestCreateIntoClosedPeriodRejected(t *testing.T) {
	svc, repo, sub, fund := fixture(t)
	assert.NoError(t, svc.ClosePeriod(admin, day))

	_, _, err := svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 140, Date: day, BranchID: 1,
	})
	var perr *PermissionError
	assert.ErrorAs(t, err, &perr)
	assert.Empty(t, repo.readings)

	_, err = svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(10), Method: models.PaymentMethodCash, Date: day, BranchID: 1,
	})
	assert.ErrorAs(t, err, &perr)

	// A day after the cutoff is fine.
	_, _, err = svc.RecordReading(clerk, ReadingInput{
		SubscriberID: sub.ID, PeriodYear: 2025, PeriodMonth: 6, CurrentReading: 140, Date: day.AddDate(0, 0, 1), BranchID: 1,
	})
	assert.NoError(t, err)
}

func TestDeleteReadingReversesCharge(t *testing.T) {
	svc, repo, sub, _ := fixture(t)
	reading := recordOneReading(t, svc, sub)
	assert.True(t, sub.Balance.Equal(decimal.NewFromInt(65)))
	assert.EqualValues(t, 140, sub.LastReading)

	assert.NoError(t, svc.DeleteTransaction(clerk, KindReading, reading.ID))

	assert.True(t, sub.Balance.IsZero())
	assert.EqualValues(t, 120, sub.LastReading)
	assert.Empty(t, repo.readings)
	assert.Empty(t, repo.invoices)

	// The journal is append-only: the original pair plus a reversing pair.
	assert.Len(t, repo.journal, 4)
	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range repo.journal {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	assert.True(t, debits.Equal(credits))
}

func TestDeleteReceiptReversesBalances(t *testing.T) {
	svc, repo, sub, fund := fixture(t)
	sub.Balance = decimal.NewFromInt(80)

	receipt, err := svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(30), Method: models.PaymentMethodCash, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	assert.True(t, sub.Balance.Equal(decimal.NewFromInt(50)))
	assert.True(t, fund.Balance.Equal(decimal.NewFromInt(30)))

	assert.NoError(t, svc.DeleteTransaction(clerk, KindReceipt, receipt.ID))
	assert.True(t, sub.Balance.Equal(decimal.NewFromInt(80)))
	assert.True(t, fund.Balance.IsZero())
	assert.Empty(t, repo.receipts)
}

func TestDeleteInvoiceDirectlyRejected(t *testing.T) {
	svc, _, sub, _ := fixture(t)
	reading := recordOneReading(t, svc, sub)

	inv, err := svc.repo.InvoiceByReading(reading.ID)
	assert.NoError(t, err)

	err = svc.DeleteTransaction(admin, KindInvoice, inv.ID)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParseEntityKind(t *testing.T) {
	for _, valid := range []string{"readings", "invoices", "receipts", "expenses", "settlements"} {
		kind, err := ParseEntityKind(valid)
		assert.NoError(t, err)
		assert.Equal(t, EntityKind(valid), kind)
	}
	_, err := ParseEntityKind("subscribers")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPostAcrossKinds(t *testing.T) {
	svc, _, sub, fund := fixture(t)

	receipt, err := svc.RecordReceipt(clerk, ReceiptInput{
		SubscriberID: sub.ID, FundID: fund.ID, CollectorID: 1,
		Amount: decimal.NewFromInt(10), Method: models.PaymentMethodCash, Date: day, BranchID: 1,
	})
	assert.NoError(t, err)
	expense, err := svc.RecordExpense(accountant, ExpenseInput{
		FundID: fund.ID, Category: "fuel", Amount: decimal.NewFromInt(5), Date: day, BranchID: 1,
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.Post(admin, KindReceipt, receipt.ID))
	assert.NoError(t, svc.Post(admin, KindExpense, expense.ID))
	assert.True(t, receipt.IsPosted)
	assert.True(t, expense.IsPosted)
}
