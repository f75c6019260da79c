package expenditure_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blip-cmd/xpense/internal/expenditure"
)

func validExpenditure(id string) *expenditure.Expenditure {
	return &expenditure.Expenditure{
		ID:           id,
		Description:  "Cement bags",
		Amount:       decimal.NewFromInt(30),
		CategoryName: "Materials",
		Timestamp:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		AccountID:    "A001",
	}
}

func TestStore_AddValidation(t *testing.T) {
	type testCase struct {
		name   string
		mutate func(e *expenditure.Expenditure)
	}

	tests := []testCase{
		{name: "BlankID", mutate: func(e *expenditure.Expenditure) { e.ID = "  " }},
		{name: "BlankDescription", mutate: func(e *expenditure.Expenditure) { e.Description = "" }},
		{name: "ZeroAmount", mutate: func(e *expenditure.Expenditure) { e.Amount = decimal.Zero }},
		{name: "NegativeAmount", mutate: func(e *expenditure.Expenditure) { e.Amount = decimal.NewFromInt(-5) }},
		{name: "MissingCategory", mutate: func(e *expenditure.Expenditure) { e.CategoryName = "" }},
		{name: "MissingTimestamp", mutate: func(e *expenditure.Expenditure) { e.Timestamp = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := expenditure.NewStore("EXP-")

			e := validExpenditure("EXP-0001")
			tt.mutate(e)

			assert.ErrorIs(t, s.Add(e), expenditure.ErrValidation)
			assert.Equal(t, 0, s.Len())
		})
	}

	t.Run("Nil", func(t *testing.T) {
		s := expenditure.NewStore("EXP-")
		assert.ErrorIs(t, s.Add(nil), expenditure.ErrValidation)
	})
}

func TestStore_DuplicateIDCaseInsensitive(t *testing.T) {
	s := expenditure.NewStore("EXP-")

	require.NoError(t, s.Add(validExpenditure("exp-0001")))

	err := s.Add(validExpenditure("EXP-0001"))
	assert.ErrorIs(t, err, expenditure.ErrDuplicateID)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get("Exp-0001")
	require.NoError(t, err)
	assert.Equal(t, "exp-0001", got.ID)
}

func TestStore_CounterSeedsFromLoadedIDs(t *testing.T) {
	s := expenditure.NewStore("EXP-")

	require.NoError(t, s.Add(validExpenditure("EXP-0007")))
	require.NoError(t, s.Add(validExpenditure("EXP-0003")))

	assert.Equal(t, "EXP-0008", s.NextID())
	assert.Equal(t, "EXP-0009", s.NextID())
}

func TestStore_ResetCounter(t *testing.T) {
	s := expenditure.NewStore("EXP-")
	s.ResetCounter(41)

	assert.Equal(t, "EXP-0042", s.NextID())
}

func TestStore_TotalForAccount(t *testing.T) {
	s := expenditure.NewStore("EXP-")

	first := validExpenditure("EXP-0001")
	second := validExpenditure("EXP-0002")
	second.Amount = decimal.NewFromInt(20)
	other := validExpenditure("EXP-0003")
	other.AccountID = "A002"

	require.NoError(t, s.Add(first))
	require.NoError(t, s.Add(second))
	require.NoError(t, s.Add(other))

	assert.True(t, s.TotalForAccount("A001").Equal(decimal.NewFromInt(50)))
	assert.True(t, s.TotalForAccount("A002").Equal(decimal.NewFromInt(30)))
	assert.True(t, s.TotalForAccount("A999").IsZero())
}

func TestStore_AttachReceipt(t *testing.T) {
	s := expenditure.NewStore("EXP-")
	require.NoError(t, s.Add(validExpenditure("EXP-0001")))

	r, err := s.AttachReceipt("exp-0001", "/receipts/cement.pdf")
	require.NoError(t, err)
	assert.Equal(t, "EXP-0001", r.ExpenseCode)
	assert.NotEmpty(t, r.ID)

	got, err := s.Get("EXP-0001")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ReceiptID)
	assert.Len(t, s.Receipts(), 1)

	_, err = s.AttachReceipt("EXP-0404", "/receipts/x.pdf")
	assert.ErrorIs(t, err, expenditure.ErrNotFound)

	_, err = s.AttachReceipt("EXP-0001", "  ")
	assert.ErrorIs(t, err, expenditure.ErrValidation)
}
