// Package coordinator orchestrates the ledger, category registry and
// expenditure store into a single atomic "record an expenditure" operation
// with compensating rollback. No failure escapes this package as an error:
// every failure path becomes a Result plus an alert.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/alert"
	"github.com/blip-cmd/xpense/internal/category"
	"github.com/blip-cmd/xpense/internal/expenditure"
	"github.com/blip-cmd/xpense/internal/ledger"
	"github.com/blip-cmd/xpense/internal/persistence"
)

// State is a transaction's position in the
// Validating -> {Rejected | Debited} -> {Committed | RolledBack} machine.
// Committed, Rejected and RolledBack are terminal.
type State string

const (
	StateValidating State = "validating"
	StateRejected   State = "rejected"
	StateDebited    State = "debited"
	StateCommitted  State = "committed"
	StateRolledBack State = "rolled_back"
)

// Request describes one expenditure to record. ID may be left blank to have
// the store generate one.
type Request struct {
	ID           string
	AccountID    string
	CategoryName string
	Amount       decimal.Decimal
	Description  string
	Timestamp    time.Time
	Phase        string
}

// Result is the terminal outcome of an AddExpenditure call. Err classifies
// the failure for rejected and rolled-back transactions and is nil iff the
// transaction committed.
type Result struct {
	State       State
	Expenditure *expenditure.Expenditure
	Err         error
}

func (r Result) Committed() bool { return r.State == StateCommitted }

// Coordinator is the system root: it owns the transaction protocol and the
// simple single-step mutations exposed to the UI layers.
type Coordinator struct {
	ledger     *ledger.Ledger
	categories *category.Registry
	store      *expenditure.Store
	alerts     *alert.Center
	persister  persistence.Persister

	// Serializes the whole debit->record->index->persist sequence per
	// account, so two concurrent expenditures cannot both observe
	// sufficient funds and over-debit.
	mu           sync.Mutex
	accountLocks map[string]*sync.Mutex
}

func New(
	l *ledger.Ledger,
	categories *category.Registry,
	store *expenditure.Store,
	alerts *alert.Center,
	persister persistence.Persister,
) *Coordinator {
	return &Coordinator{
		ledger:       l,
		categories:   categories,
		store:        store,
		alerts:       alerts,
		persister:    persister,
		accountLocks: make(map[string]*sync.Mutex),
	}
}

func (c *Coordinator) accountLock(accountID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.accountLocks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		c.accountLocks[accountID] = lock
	}

	return lock
}

// AddExpenditure runs the compound transaction: validate account and
// category, debit the account, record the expenditure, index it, then hand
// the new state to the persistence collaborator. A record failure after the
// debit triggers a compensating credit for the exact debited amount. A
// persistence failure after the in-memory commit leaves the state Committed
// and is surfaced through the alert channel.
func (c *Coordinator) AddExpenditure(ctx context.Context, req Request) Result {
	lock := c.accountLock(req.AccountID)
	lock.Lock()
	defer lock.Unlock()

	account, err := c.ledger.Account(req.AccountID)
	if err != nil {
		c.alerts.Add(fmt.Sprintf("account not found: %s", req.AccountID), alert.PriorityWarning)
		return Result{State: StateRejected, Err: ledger.ErrNotFound}
	}

	if !c.categories.Validate(req.CategoryName) {
		c.alerts.Add(fmt.Sprintf("category not found: %s", req.CategoryName), alert.PriorityWarning)
		return Result{State: StateRejected, Err: category.ErrNotFound}
	}

	if err := c.ledger.LogExpenditure(req.AccountID, req.Amount); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			c.alerts.Add(fmt.Sprintf("insufficient funds in account %s", req.AccountID), alert.PriorityCritical)
			return Result{State: StateRejected, Err: ledger.ErrInsufficientFunds}
		}

		c.alerts.Add(fmt.Sprintf("invalid expenditure amount for account %s", req.AccountID), alert.PriorityWarning)

		return Result{State: StateRejected, Err: err}
	}

	// Debited. From here on, any failure must compensate the debit.
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = c.store.NextID()
	}

	exp := &expenditure.Expenditure{
		ID:           id,
		Description:  req.Description,
		Amount:       req.Amount,
		CategoryName: req.CategoryName,
		Timestamp:    req.Timestamp,
		Phase:        req.Phase,
		AccountID:    req.AccountID,
	}

	if err := c.store.Add(exp); err != nil {
		// The compensating credit must restore the pre-transaction
		// balance exactly and must not run the low-funds hook.
		if creditErr := account.Credit(req.Amount); creditErr != nil {
			slog.Error("rollback credit failed", "account", req.AccountID, "error", creditErr)
		}

		c.alerts.Add(fmt.Sprintf("expenditure not added: %v", err), alert.PriorityWarning)

		return Result{State: StateRolledBack, Err: err}
	}

	if err := c.categories.AddExpenditure(req.CategoryName, exp); err != nil {
		// Unreachable after Validate, but never leave it silent.
		slog.Error("category index update failed", "category", req.CategoryName, "error", err)
	}

	account.AttachExpenditure(exp.ID)

	c.persist(ctx, persistence.KindExpenditures, persistence.KindAccounts)

	return Result{State: StateCommitted, Expenditure: exp}
}

// persist writes through the named collections. Failures are non-fatal: the
// in-memory state stays committed and the gap is reported as an alert.
func (c *Coordinator) persist(ctx context.Context, kinds ...persistence.Kind) {
	for _, kind := range kinds {
		if err := c.persister.Save(ctx, kind, c.snapshot(kind)); err != nil {
			slog.Error("persistence write failed", "kind", kind, "error", err)
			c.alerts.Add(fmt.Sprintf("failed to persist %s: in-memory state is ahead of storage", kind), alert.PriorityWarning)
		}
	}
}

func (c *Coordinator) snapshot(kind persistence.Kind) []persistence.Record {
	switch kind {
	case persistence.KindAccounts:
		accounts := c.ledger.Accounts()
		records := make([]persistence.Record, 0, len(accounts))

		for _, a := range accounts {
			records = append(records, persistence.EncodeAccount(a))
		}

		return records
	case persistence.KindCategories:
		categories := c.categories.All()
		records := make([]persistence.Record, 0, len(categories))

		for _, cat := range categories {
			records = append(records, persistence.EncodeCategory(cat))
		}

		return records
	case persistence.KindExpenditures:
		expenditures := c.store.All()
		records := make([]persistence.Record, 0, len(expenditures))

		for _, e := range expenditures {
			records = append(records, persistence.EncodeExpenditure(e))
		}

		return records
	case persistence.KindReceipts:
		receipts := c.store.Receipts()
		records := make([]persistence.Record, 0, len(receipts))

		for _, r := range receipts {
			records = append(records, persistence.EncodeReceipt(r))
		}

		return records
	}

	return nil
}
