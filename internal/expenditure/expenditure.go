// Package expenditure holds the canonical expenditure records and the store
// enforcing id uniqueness.
package expenditure

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expenditure is a single recorded expense tied to one account and one
// category. Once committed it is treated as immutable except for the explicit
// receipt attachment path.
type Expenditure struct {
	ID           string
	Description  string
	Amount       decimal.Decimal
	CategoryName string
	Timestamp    time.Time
	Phase        string
	AccountID    string
	ReceiptID    string
}

// Receipt is a stored reference to a receipt document for an expenditure.
type Receipt struct {
	ID          string
	ExpenseCode string
	FilePath    string
	Timestamp   time.Time
}
