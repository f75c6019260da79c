package coordinator_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/blip-cmd/xpense/internal/alert"
	"github.com/blip-cmd/xpense/internal/category"
	"github.com/blip-cmd/xpense/internal/coordinator"
	"github.com/blip-cmd/xpense/internal/expenditure"
	"github.com/blip-cmd/xpense/internal/ledger"
	"github.com/blip-cmd/xpense/internal/persistence"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

type fixture struct {
	alerts    *alert.Center
	ledger    *ledger.Ledger
	registry  *category.Registry
	store     *expenditure.Store
	persister *persistence.MockPersister
	coord     *coordinator.Coordinator
}

// newFixture builds a coordinator with account A001 (balance 100.00), the
// Food category, and a low-balance threshold of 100.00.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		alerts:    alert.NewCenter(dec(t, "100.00")),
		registry:  category.NewRegistry(),
		store:     expenditure.NewStore("EXP-"),
		persister: persistence.NewMockPersister(ctrl),
	}
	f.ledger = ledger.New(f.alerts)
	f.coord = coordinator.New(f.ledger, f.registry, f.store, f.alerts, f.persister)

	require.NoError(t, f.ledger.AddAccount(ledger.NewAccount("A001", "Site works", dec(t, "100.00"))))
	require.NoError(t, f.registry.Add(category.Category{ID: "C1", Name: "Food"}))

	return f
}

func (f *fixture) request(t *testing.T, amount string) coordinator.Request {
	t.Helper()

	return coordinator.Request{
		AccountID:    "A001",
		CategoryName: "Food",
		Amount:       dec(t, amount),
		Description:  "Lunch for crew",
		Timestamp:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()

	a, err := f.ledger.Account("A001")
	require.NoError(t, err)

	return a.Balance()
}

func TestAddExpenditure_Commit(t *testing.T) {
	f := newFixture(t)

	f.persister.EXPECT().Save(gomock.Any(), persistence.KindExpenditures, gomock.Any()).Return(nil)
	f.persister.EXPECT().Save(gomock.Any(), persistence.KindAccounts, gomock.Any()).Return(nil)

	res := f.coord.AddExpenditure(context.Background(), f.request(t, "30.00"))

	require.True(t, res.Committed())
	require.NotNil(t, res.Expenditure)
	assert.NoError(t, res.Err)

	assert.True(t, f.balance(t).Equal(dec(t, "70.00")))
	assert.Equal(t, 1, f.store.Len())

	indexed, err := f.registry.Expenditures("Food")
	require.NoError(t, err)
	assert.Len(t, indexed, 1)

	a, _ := f.ledger.Account("A001")
	assert.Equal(t, []string{res.Expenditure.ID}, a.ExpenditureIDs())

	// 70.00 < 100.00 threshold: the committed debit raised a low-funds alert.
	got, ok := f.alerts.Next()
	require.True(t, ok)
	assert.Equal(t, alert.PriorityCritical, got.Priority)
	assert.Contains(t, got.Message, "low funds")
}

func TestAddExpenditure_AccountNotFound(t *testing.T) {
	f := newFixture(t)

	req := f.request(t, "30.00")
	req.AccountID = "A404"

	res := f.coord.AddExpenditure(context.Background(), req)

	assert.Equal(t, coordinator.StateRejected, res.State)
	assert.ErrorIs(t, res.Err, ledger.ErrNotFound)
	assert.Equal(t, 0, f.store.Len())
	assert.True(t, f.balance(t).Equal(dec(t, "100.00")))

	got, ok := f.alerts.Next()
	require.True(t, ok)
	assert.Contains(t, got.Message, "account not found")
}

func TestAddExpenditure_CategoryNotFound(t *testing.T) {
	f := newFixture(t)

	req := f.request(t, "30.00")
	req.CategoryName = "Travel"

	res := f.coord.AddExpenditure(context.Background(), req)

	assert.Equal(t, coordinator.StateRejected, res.State)
	assert.ErrorIs(t, res.Err, category.ErrNotFound)
	assert.True(t, f.balance(t).Equal(dec(t, "100.00")))
	assert.Equal(t, 0, f.store.Len())

	got, ok := f.alerts.Next()
	require.True(t, ok)
	assert.Contains(t, got.Message, "category not found")
}

func TestAddExpenditure_InsufficientFunds(t *testing.T) {
	f := newFixture(t)

	res := f.coord.AddExpenditure(context.Background(), f.request(t, "1000.00"))

	assert.Equal(t, coordinator.StateRejected, res.State)
	assert.ErrorIs(t, res.Err, ledger.ErrInsufficientFunds)
	assert.True(t, f.balance(t).Equal(dec(t, "100.00")))
	assert.Equal(t, 0, f.store.Len())

	require.Equal(t, 1, f.alerts.Pending())

	got, ok := f.alerts.Next()
	require.True(t, ok)
	assert.Equal(t, alert.PriorityCritical, got.Priority)
	assert.Equal(t, "insufficient funds in account A001", got.Message)
}

func TestAddExpenditure_DuplicateIDRollsBack(t *testing.T) {
	f := newFixture(t)

	f.persister.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	req := f.request(t, "30.00")
	req.ID = "EXP-0001"

	first := f.coord.AddExpenditure(context.Background(), req)
	require.True(t, first.Committed())

	// Same id, different casing: rejected after the debit, so the debit is
	// compensated and the balance restored exactly.
	dup := f.request(t, "25.00")
	dup.ID = "exp-0001"

	second := f.coord.AddExpenditure(context.Background(), dup)

	assert.Equal(t, coordinator.StateRolledBack, second.State)
	assert.ErrorIs(t, second.Err, expenditure.ErrDuplicateID)
	assert.True(t, f.balance(t).Equal(dec(t, "70.00")))
	assert.Equal(t, 1, f.store.Len())

	var sawRollbackAlert bool
	for _, a := range f.alerts.DrainAll() {
		if a.Message == "expenditure not added: "+second.Err.Error() {
			sawRollbackAlert = true
		}
	}

	assert.True(t, sawRollbackAlert)
}

func TestAddExpenditure_PersistenceFailureStaysCommitted(t *testing.T) {
	f := newFixture(t)

	f.persister.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(persistence.ErrPersistence).
		Times(2)

	res := f.coord.AddExpenditure(context.Background(), f.request(t, "30.00"))

	require.True(t, res.Committed())
	assert.True(t, f.balance(t).Equal(dec(t, "70.00")))
	assert.Equal(t, 1, f.store.Len())

	var sawPersistenceAlert bool
	for _, a := range f.alerts.DrainAll() {
		if a.Priority == alert.PriorityWarning {
			sawPersistenceAlert = true
		}
	}

	assert.True(t, sawPersistenceAlert)
}

func TestAddExpenditure_Conservation(t *testing.T) {
	f := newFixture(t)

	f.persister.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	amounts := []string{"12.34", "0.99", "45.00", "7.77"}
	for _, amount := range amounts {
		res := f.coord.AddExpenditure(context.Background(), f.request(t, amount))
		require.True(t, res.Committed())
	}

	// Conservation: sum(expenditures) == initial balance - current balance.
	spent := f.store.TotalForAccount("A001")
	assert.True(t, dec(t, "100.00").Sub(f.balance(t)).Equal(spent),
		"initial - current = %s, spent = %s", dec(t, "100.00").Sub(f.balance(t)), spent)
}

// The end-to-end scenario from the system's acceptance checklist: a 30.00
// debit succeeds and trips the low-funds check, then a 1000.00 debit fails
// leaving the balance untouched with an insufficient-funds alert next in line.
func TestAddExpenditure_Scenario(t *testing.T) {
	f := newFixture(t)

	f.persister.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res := f.coord.AddExpenditure(context.Background(), f.request(t, "30.00"))
	require.True(t, res.Committed())
	assert.True(t, f.balance(t).Equal(dec(t, "70.00")))

	indexed, err := f.registry.Expenditures("Food")
	require.NoError(t, err)
	assert.Len(t, indexed, 1)

	pendingBefore := f.alerts.Pending()

	res = f.coord.AddExpenditure(context.Background(), f.request(t, "1000.00"))
	assert.Equal(t, coordinator.StateRejected, res.State)
	assert.True(t, f.balance(t).Equal(dec(t, "70.00")))
	assert.Equal(t, pendingBefore+1, f.alerts.Pending())

	got, ok := f.alerts.Next()
	require.True(t, ok)
	assert.Equal(t, 1, got.Priority)
}

func TestAddExpenditure_GeneratesIDWhenBlank(t *testing.T) {
	f := newFixture(t)

	f.persister.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	first := f.coord.AddExpenditure(context.Background(), f.request(t, "10.00"))
	second := f.coord.AddExpenditure(context.Background(), f.request(t, "10.00"))

	require.True(t, first.Committed())
	require.True(t, second.Committed())
	assert.Equal(t, "EXP-0001", first.Expenditure.ID)
	assert.Equal(t, "EXP-0002", second.Expenditure.ID)
}
