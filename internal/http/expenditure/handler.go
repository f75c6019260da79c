package expenditure

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/category"
	"github.com/blip-cmd/xpense/internal/coordinator"
	"github.com/blip-cmd/xpense/internal/expenditure"
	"github.com/blip-cmd/xpense/internal/ledger"
)

type Handler struct {
	coord *coordinator.Coordinator
}

func NewHandler(coord *coordinator.Coordinator) *Handler {
	return &Handler{coord: coord}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/receipt", h.attachReceipt)
}

type createExpenditureRequest struct {
	ID           string    `json:"id,omitempty"`
	AccountID    string    `json:"account_id"`
	CategoryName string    `json:"category"`
	Amount       string    `json:"amount"`
	Description  string    `json:"description"`
	Timestamp    time.Time `json:"timestamp"`
	Phase        string    `json:"phase,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenditureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res := h.coord.AddExpenditure(r.Context(), coordinator.Request{
		ID:           req.ID,
		AccountID:    req.AccountID,
		CategoryName: req.CategoryName,
		Amount:       amount,
		Description:  req.Description,
		Timestamp:    ts,
		Phase:        req.Phase,
	})
	if !res.Committed() {
		http.Error(w, res.Err.Error(), statusFor(res.Err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(res.Expenditure)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// statusFor maps a transaction's classifying error to an HTTP status. The
// transaction outcome itself is final by the time the coordinator returns.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, category.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, expenditure.ErrDuplicateID):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	expenditures := h.coord.Expenditures()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(expenditures)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	e, err := h.coord.Expenditure(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, expenditure.ErrNotFound) {
			http.Error(w, "expenditure not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type attachReceiptRequest struct {
	FilePath string `json:"file_path"`
}

func (h *Handler) attachReceipt(w http.ResponseWriter, r *http.Request) {
	var req attachReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	receipt, err := h.coord.AttachReceipt(r.Context(), chi.URLParam(r, "id"), req.FilePath)
	if err != nil {
		switch {
		case errors.Is(err, expenditure.ErrNotFound):
			http.Error(w, "expenditure not found", http.StatusNotFound)
		case errors.Is(err, expenditure.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toReceiptResponse(receipt)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
