// Package ledger holds bank accounts and their balance mutation rules.
package ledger

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/alert"
	"github.com/blip-cmd/xpense/internal/container"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrDuplicateID       = errors.New("account id already exists")
	ErrMissingID         = errors.New("account id is required")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Ledger is the keyed collection of accounts. Accounts are kept in insertion
// order, keyed by id.
type Ledger struct {
	mu       sync.Mutex
	accounts *container.Map[string, *Account]
	alerts   *alert.Center
}

func New(alerts *alert.Center) *Ledger {
	return &Ledger{
		accounts: container.NewMap[string, *Account](),
		alerts:   alerts,
	}
}

// AddAccount registers an account. It fails when the account has no id or the
// id is already taken.
func (l *Ledger) AddAccount(a *Account) error {
	if a == nil || a.ID() == "" {
		return ErrMissingID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.accounts.Contains(a.ID()) {
		return ErrDuplicateID
	}

	l.accounts.Put(a.ID(), a)

	return nil
}

// Account looks up an account by id.
func (l *Ledger) Account(id string) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	return a, nil
}

// Accounts returns all accounts in insertion order.
func (l *Ledger) Accounts() []*Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts := make([]*Account, 0, l.accounts.Len())
	for a := range l.accounts.Values() {
		accounts = append(accounts, a)
	}

	return accounts
}

// LogExpenditure debits amount from the named account. On a successful debit
// the post-debit balance is run through the low-funds check; failures are
// returned without mutation.
func (l *Ledger) LogExpenditure(accountID string, amount decimal.Decimal) error {
	a, err := l.Account(accountID)
	if err != nil {
		return err
	}

	if err := a.Debit(amount); err != nil {
		return err
	}

	l.alerts.CheckLowFunds(accountID, a.Balance())

	return nil
}
