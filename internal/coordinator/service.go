package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/category"
	"github.com/blip-cmd/xpense/internal/expenditure"
	"github.com/blip-cmd/xpense/internal/ledger"
	"github.com/blip-cmd/xpense/internal/persistence"
)

// Single-entity, single-step mutations and read accessors exposed to the UI
// layers. Unlike AddExpenditure these have no multi-entity atomicity to
// protect; they mutate one component and write through.

func (c *Coordinator) AddAccount(ctx context.Context, a *ledger.Account) error {
	if err := c.ledger.AddAccount(a); err != nil {
		return err
	}

	c.persist(ctx, persistence.KindAccounts)

	return nil
}

func (c *Coordinator) AddCategory(ctx context.Context, cat category.Category) error {
	if err := c.categories.Add(cat); err != nil {
		return err
	}

	c.persist(ctx, persistence.KindCategories)

	return nil
}

// CreditAccount applies an independent credit (a top-up) to an account.
func (c *Coordinator) CreditAccount(ctx context.Context, accountID string, amount decimal.Decimal) error {
	lock := c.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	a, err := c.ledger.Account(accountID)
	if err != nil {
		return err
	}

	if err := a.Credit(amount); err != nil {
		return err
	}

	c.persist(ctx, persistence.KindAccounts)

	return nil
}

// AttachReceipt links a receipt document to a committed expenditure.
func (c *Coordinator) AttachReceipt(ctx context.Context, expenditureID, filePath string) (*expenditure.Receipt, error) {
	r, err := c.store.AttachReceipt(expenditureID, filePath)
	if err != nil {
		return nil, err
	}

	c.persist(ctx, persistence.KindReceipts, persistence.KindExpenditures)

	return r, nil
}

func (c *Coordinator) Accounts() []*ledger.Account         { return c.ledger.Accounts() }
func (c *Coordinator) Categories() []category.Category     { return c.categories.All() }
func (c *Coordinator) Expenditures() []*expenditure.Expenditure { return c.store.All() }

func (c *Coordinator) Account(id string) (*ledger.Account, error) {
	return c.ledger.Account(id)
}

func (c *Coordinator) Expenditure(id string) (*expenditure.Expenditure, error) {
	return c.store.Get(id)
}

// CategoryExpenditures returns the expenditures indexed under a category.
func (c *Coordinator) CategoryExpenditures(name string) ([]*expenditure.Expenditure, error) {
	return c.categories.Expenditures(name)
}

// Load hydrates the in-memory state from the persistence collaborator.
// Malformed or conflicting records are skipped and logged; the id counter is
// seeded by the store as expenditures are added, so restarts never reuse an
// auto-generated id.
func (c *Coordinator) Load(ctx context.Context) error {
	categories, err := c.persister.Load(ctx, persistence.KindCategories)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	for _, r := range categories {
		cat, err := persistence.DecodeCategory(r)
		if err == nil {
			err = c.categories.Add(cat)
		}

		if err != nil {
			slog.Warn("skipping category record", "error", err)
		}
	}

	accounts, err := c.persister.Load(ctx, persistence.KindAccounts)
	if err != nil {
		return fmt.Errorf("loading accounts: %w", err)
	}

	for _, r := range accounts {
		a, err := persistence.DecodeAccount(r)
		if err == nil {
			err = c.ledger.AddAccount(a)
		}

		if err != nil {
			slog.Warn("skipping account record", "error", err)
		}
	}

	expenditures, err := c.persister.Load(ctx, persistence.KindExpenditures)
	if err != nil {
		return fmt.Errorf("loading expenditures: %w", err)
	}

	for _, r := range expenditures {
		e, err := persistence.DecodeExpenditure(r)
		if err == nil {
			err = c.store.Add(e)
		}

		if err != nil {
			slog.Warn("skipping expenditure record", "error", err)
			continue
		}

		if err := c.categories.AddExpenditure(e.CategoryName, e); err != nil {
			slog.Warn("expenditure references unknown category", "id", e.ID, "category", e.CategoryName)
		}

		if a, err := c.ledger.Account(e.AccountID); err == nil {
			a.AttachExpenditure(e.ID)
		}
	}

	receipts, err := c.persister.Load(ctx, persistence.KindReceipts)
	if err != nil {
		return fmt.Errorf("loading receipts: %w", err)
	}

	for _, r := range receipts {
		rc, err := persistence.DecodeReceipt(r)
		if err != nil {
			slog.Warn("skipping receipt record", "error", err)
			continue
		}

		c.store.AddReceipt(rc)
	}

	return nil
}
