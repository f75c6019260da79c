package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/container"
)

// Account holds a monetary balance for a project bank account. The balance is
// mutated only through Debit and Credit, which enforce the non-negative
// balance invariant.
type Account struct {
	id        string
	name      string
	createdAt time.Time

	mu           sync.Mutex
	balance      decimal.Decimal
	expenditures *container.List[string]
}

// NewAccount builds an account with the given opening balance.
func NewAccount(id, name string, openingBalance decimal.Decimal) *Account {
	return &Account{
		id:           id,
		name:         name,
		createdAt:    time.Now(),
		balance:      openingBalance,
		expenditures: container.NewList[string](),
	}
}

func (a *Account) ID() string   { return a.id }
func (a *Account) Name() string { return a.name }

func (a *Account) CreatedAt() time.Time { return a.createdAt }

func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance
}

// Debit subtracts amount from the balance. It fails without mutation when
// amount is not positive or exceeds the current balance.
func (a *Account) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(amount)

	return nil
}

// Credit adds amount to the balance. It fails without mutation when amount is
// not positive.
func (a *Account) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance = a.balance.Add(amount)

	return nil
}

// AttachExpenditure records an expenditure id against this account.
func (a *Account) AttachExpenditure(expenditureID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.expenditures.Append(expenditureID)
}

// ExpenditureIDs returns the ids of expenditures recorded against this
// account, oldest first.
func (a *Account) ExpenditureIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.expenditures.Slice()
}
