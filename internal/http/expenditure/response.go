package expenditure

import (
	"time"

	"github.com/blip-cmd/xpense/internal/expenditure"
)

type expenditureResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
	Phase       string    `json:"phase,omitempty"`
	AccountID   string    `json:"account_id"`
	ReceiptID   string    `json:"receipt_id,omitempty"`
}

func toResponse(e *expenditure.Expenditure) expenditureResponse {
	return expenditureResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.StringFixed(2),
		Category:    e.CategoryName,
		Timestamp:   e.Timestamp,
		Phase:       e.Phase,
		AccountID:   e.AccountID,
		ReceiptID:   e.ReceiptID,
	}
}

func toResponseList(expenditures []*expenditure.Expenditure) []expenditureResponse {
	resp := make([]expenditureResponse, len(expenditures))
	for i, e := range expenditures {
		resp[i] = toResponse(e)
	}

	return resp
}

type receiptResponse struct {
	ID          string    `json:"id"`
	ExpenseCode string    `json:"expense_code"`
	FilePath    string    `json:"file_path"`
	Timestamp   time.Time `json:"timestamp"`
}

func toReceiptResponse(r *expenditure.Receipt) receiptResponse {
	return receiptResponse{
		ID:          r.ID,
		ExpenseCode: r.ExpenseCode,
		FilePath:    r.FilePath,
		Timestamp:   r.Timestamp,
	}
}
