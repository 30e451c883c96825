package ledger

import (
	"time"

	"github.com/aquaworks/AquaDesk/app/models"
)

// Post finalizes a draft record, stamping who posted it and when. Posted
// records are immutable to everyone but an administrator.
func (s *Service) Post(actor Actor, kind EntityKind, id uint) error {
	if err := actor.require(ActionPost); err != nil {
		return err
	}
	return s.repo.Transaction(func(repo Repository) error {
		t, err := repo.FindTransaction(kind, id)
		if err != nil {
			return err
		}
		if t.Posting().IsPosted {
			return validationf("is_posted", "record is already posted")
		}
		t.Posting().MarkPosted(actor.ID, time.Now())
		return repo.SaveTransaction(kind, t)
	})
}

// Unpost returns a posted record to draft. Administrator only.
func (s *Service) Unpost(actor Actor, kind EntityKind, id uint) error {
	if err := actor.require(ActionUnpost); err != nil {
		return err
	}
	return s.repo.Transaction(func(repo Repository) error {
		t, err := repo.FindTransaction(kind, id)
		if err != nil {
			return err
		}
		if !t.Posting().IsPosted {
			return validationf("is_posted", "record is not posted")
		}
		t.Posting().MarkUnposted()
		return repo.SaveTransaction(kind, t)
	})
}

// ClosePeriod sets the period-close cutoff: transactions dated on or before it
// become immutable regardless of role. Administrator only. Moving the cutoff
// backward reopens the period; that is an allowed admin override.
func (s *Service) ClosePeriod(actor Actor, date time.Time) error {
	if err := actor.require(ActionClosePeriod); err != nil {
		return err
	}
	return s.repo.SetLastClosedDate(date)
}

// LastClosedDate reports the current period-close cutoff, nil when unset.
func (s *Service) LastClosedDate() (*time.Time, error) {
	return s.repo.LastClosedDate()
}

// AuthorizeModify checks whether the actor may edit or delete the record:
// posted records need an administrator, and nothing dated inside the closed
// period may change, administrator or not.
func (s *Service) AuthorizeModify(actor Actor, kind EntityKind, id uint) error {
	t, err := s.repo.FindTransaction(kind, id)
	if err != nil {
		return err
	}
	return guardModify(s.repo, t, actor)
}

// DeleteTransaction removes a draft (or admin-unlocked) record and reverses
// its balance effects, appending offsetting journal entries so the journal
// stays append-only. Invoices are deleted through their reading.
func (s *Service) DeleteTransaction(actor Actor, kind EntityKind, id uint) error {
	if err := actor.require(ActionModify); err != nil {
		return err
	}
	if kind == KindInvoice {
		return validationf("kind", "invoices are deleted through their reading")
	}
	return s.repo.Transaction(func(repo Repository) error {
		t, err := repo.FindTransaction(kind, id)
		if err != nil {
			return err
		}
		if err := guardModify(repo, t, actor); err != nil {
			return err
		}

		switch kind {
		case KindReading:
			return deleteReading(repo, t.(*models.Reading))
		case KindReceipt:
			return deleteReceipt(repo, t.(*models.Receipt))
		case KindExpense:
			return deleteExpense(repo, t.(*models.Expense))
		case KindSettlement:
			return deleteSettlement(repo, t.(*models.Settlement))
		}
		return validationf("kind", "unknown transaction kind %q", kind)
	})
}

func guardModify(repo Repository, t Transactional, actor Actor) error {
	if t.Posting().IsPosted && !actor.IsAdmin() {
		return permissionf("record is posted")
	}
	closed, err := repo.LastClosedDate()
	if err != nil {
		return err
	}
	if closed != nil && !t.TransactionDate().After(*closed) {
		return permissionf("period is closed")
	}
	return nil
}

func guardOpenPeriod(repo Repository, date time.Time) error {
	closed, err := repo.LastClosedDate()
	if err != nil {
		return err
	}
	if closed != nil && !date.After(*closed) {
		return permissionf("period is closed")
	}
	return nil
}

func deleteReading(repo Repository, reading *models.Reading) error {
	invoice, err := repo.InvoiceByReading(reading.ID)
	if err != nil {
		return err
	}
	sub, err := repo.GetSubscriber(reading.SubscriberID)
	if err != nil {
		return err
	}

	sub.Balance = sub.Balance.Sub(reading.TotalAmount)
	// Roll the meter baseline back only when no later reading advanced it.
	if sub.LastReading == reading.CurrentReading {
		sub.LastReading = reading.PreviousReading
	}
	if err := repo.SaveSubscriber(sub); err != nil {
		return err
	}

	desc := "Reversal of invoice " + invoice.InvoiceNumber
	if err := appendPair(repo, journalPair{
		date:     reading.Date,
		refID:    invoice.ID,
		refType:  models.RefTypeInvoice,
		amount:   reading.TotalAmount,
		branchID: reading.BranchID,
		debit:    account{accountType: models.AccountTypeIncome, description: desc},
		credit:   account{id: sub.ID, accountType: models.AccountTypeSubscriber, description: desc},
	}); err != nil {
		return err
	}

	if err := repo.DeleteTransaction(KindInvoice, invoice.ID); err != nil {
		return err
	}
	return repo.DeleteTransaction(KindReading, reading.ID)
}

func deleteReceipt(repo Repository, receipt *models.Receipt) error {
	sub, err := repo.GetSubscriber(receipt.SubscriberID)
	if err != nil {
		return err
	}
	fund, err := repo.GetFund(receipt.FundID)
	if err != nil {
		return err
	}

	sub.Balance = sub.Balance.Add(receipt.Amount)
	if err := repo.SaveSubscriber(sub); err != nil {
		return err
	}
	fund.Balance = fund.Balance.Sub(receipt.Amount)
	if err := repo.SaveFund(fund); err != nil {
		return err
	}

	desc := "Reversal of receipt " + receipt.Reference
	if err := appendPair(repo, journalPair{
		date:     receipt.Date,
		refID:    receipt.ID,
		refType:  models.RefTypeReceipt,
		amount:   receipt.Amount,
		branchID: receipt.BranchID,
		debit:    account{id: sub.ID, accountType: models.AccountTypeSubscriber, description: desc},
		credit:   account{id: fund.ID, accountType: models.AccountTypeFund, description: desc},
	}); err != nil {
		return err
	}
	return repo.DeleteTransaction(KindReceipt, receipt.ID)
}

func deleteExpense(repo Repository, expense *models.Expense) error {
	fund, err := repo.GetFund(expense.FundID)
	if err != nil {
		return err
	}
	fund.Balance = fund.Balance.Add(expense.Amount)
	if err := repo.SaveFund(fund); err != nil {
		return err
	}

	desc := "Reversal of expense: " + expense.Description
	if err := appendPair(repo, journalPair{
		date:     expense.Date,
		refID:    expense.ID,
		refType:  models.RefTypeExpense,
		amount:   expense.Amount,
		branchID: expense.BranchID,
		debit:    account{id: fund.ID, accountType: models.AccountTypeFund, description: desc},
		credit:   account{accountType: models.AccountTypeExpense, description: desc},
	}); err != nil {
		return err
	}
	return repo.DeleteTransaction(KindExpense, expense.ID)
}

func deleteSettlement(repo Repository, settlement *models.Settlement) error {
	if settlement.Type != models.SettlementMeterReset {
		sub, err := repo.GetSubscriber(settlement.SubscriberID)
		if err != nil {
			return err
		}
		pair := journalPair{
			date:     settlement.Date,
			refID:    settlement.ID,
			refType:  models.RefTypeSettlement,
			amount:   settlement.Amount,
			branchID: settlement.BranchID,
		}
		desc := "Reversal of settlement: " + settlement.Description
		if settlement.Type == models.SettlementCredit {
			sub.Balance = sub.Balance.Add(settlement.Amount)
			pair.debit = account{id: sub.ID, accountType: models.AccountTypeSubscriber, description: desc}
			pair.credit = account{accountType: models.AccountTypeIncome, description: desc}
		} else {
			sub.Balance = sub.Balance.Sub(settlement.Amount)
			pair.debit = account{accountType: models.AccountTypeIncome, description: desc}
			pair.credit = account{id: sub.ID, accountType: models.AccountTypeSubscriber, description: desc}
		}
		if err := repo.SaveSubscriber(sub); err != nil {
			return err
		}
		if err := appendPair(repo, pair); err != nil {
			return err
		}
	}
	return repo.DeleteTransaction(KindSettlement, settlement.ID)
}
