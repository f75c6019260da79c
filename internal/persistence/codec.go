package persistence

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/category"
	"github.com/blip-cmd/xpense/internal/expenditure"
	"github.com/blip-cmd/xpense/internal/ledger"
)

// Record layouts, one record per line, pipe-delimited:
//
//	expenditure: id|description|amount|timestamp|categoryName|accountId|receiptInfo?
//	category:    name|description|color
//	account:     id|name|balance
//	receipt:     id|expenseCode|filePath|timestamp

const timestampLayout = time.RFC3339

func EncodeExpenditure(e *expenditure.Expenditure) Record {
	r := Record{
		e.ID,
		e.Description,
		e.Amount.StringFixed(2),
		e.Timestamp.Format(timestampLayout),
		e.CategoryName,
		e.AccountID,
	}

	if e.ReceiptID != "" {
		r = append(r, e.ReceiptID)
	}

	return r
}

func DecodeExpenditure(r Record) (*expenditure.Expenditure, error) {
	if len(r) < 6 || len(r) > 7 {
		return nil, fmt.Errorf("expenditure record: want 6 or 7 fields, got %d", len(r))
	}

	amount, err := decimal.NewFromString(r[2])
	if err != nil {
		return nil, fmt.Errorf("expenditure record: parsing amount %q: %w", r[2], err)
	}

	ts, err := time.Parse(timestampLayout, r[3])
	if err != nil {
		return nil, fmt.Errorf("expenditure record: parsing timestamp %q: %w", r[3], err)
	}

	e := &expenditure.Expenditure{
		ID:           r[0],
		Description:  r[1],
		Amount:       amount,
		Timestamp:    ts,
		CategoryName: r[4],
		AccountID:    r[5],
	}

	if len(r) == 7 {
		e.ReceiptID = r[6]
	}

	return e, nil
}

func EncodeCategory(c category.Category) Record {
	return Record{c.Name, c.Description, c.Color}
}

func DecodeCategory(r Record) (category.Category, error) {
	if len(r) != 3 {
		return category.Category{}, fmt.Errorf("category record: want 3 fields, got %d", len(r))
	}

	return category.Category{Name: r[0], Description: r[1], Color: r[2]}, nil
}

func EncodeAccount(a *ledger.Account) Record {
	return Record{a.ID(), a.Name(), a.Balance().StringFixed(2)}
}

func DecodeAccount(r Record) (*ledger.Account, error) {
	if len(r) != 3 {
		return nil, fmt.Errorf("account record: want 3 fields, got %d", len(r))
	}

	balance, err := decimal.NewFromString(r[2])
	if err != nil {
		return nil, fmt.Errorf("account record: parsing balance %q: %w", r[2], err)
	}

	return ledger.NewAccount(r[0], r[1], balance), nil
}

func EncodeReceipt(rc *expenditure.Receipt) Record {
	return Record{rc.ID, rc.ExpenseCode, rc.FilePath, rc.Timestamp.Format(timestampLayout)}
}

func DecodeReceipt(r Record) (*expenditure.Receipt, error) {
	if len(r) != 4 {
		return nil, fmt.Errorf("receipt record: want 4 fields, got %d", len(r))
	}

	ts, err := time.Parse(timestampLayout, r[3])
	if err != nil {
		return nil, fmt.Errorf("receipt record: parsing timestamp %q: %w", r[3], err)
	}

	return &expenditure.Receipt{ID: r[0], ExpenseCode: r[1], FilePath: r[2], Timestamp: ts}, nil
}
