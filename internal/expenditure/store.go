package expenditure

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/container"
)

var (
	ErrValidation  = errors.New("invalid expenditure")
	ErrDuplicateID = errors.New("expenditure id already exists")
	ErrNotFound    = errors.New("expenditure not found")
)

// Store keeps expenditures in insertion order plus an id index keyed by the
// lowercased id, so uniqueness is case-insensitive and ids list in order.
type Store struct {
	mu       sync.Mutex
	items    *container.List[*Expenditure]
	index    *container.TreeMap[string, *Expenditure]
	receipts *container.List[*Receipt]

	idPrefix string
	counter  int
}

// NewStore builds an empty store. Auto-generated ids use idPrefix followed by
// a zero-padded counter; the counter advances past the numeric suffix of every
// id added, so ids loaded at startup seed it and restarts never reuse one.
func NewStore(idPrefix string) *Store {
	return &Store{
		items:    container.NewList[*Expenditure](),
		index:    container.NewTreeMap[string, *Expenditure](),
		receipts: container.NewList[*Receipt](),
		idPrefix: idPrefix,
	}
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Add validates and appends an expenditure. Duplicate ids are rejected
// case-insensitively.
func (s *Store) Add(e *Expenditure) error {
	if err := validate(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeID(e.ID)
	if s.index.Contains(key) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}

	s.items.Append(e)
	s.index.Put(key, e)
	s.seedCounter(e.ID)

	return nil
}

func validate(e *Expenditure) error {
	switch {
	case e == nil:
		return fmt.Errorf("%w: nil record", ErrValidation)
	case strings.TrimSpace(e.ID) == "":
		return fmt.Errorf("%w: blank id", ErrValidation)
	case strings.TrimSpace(e.Description) == "":
		return fmt.Errorf("%w: blank description", ErrValidation)
	case !e.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	case strings.TrimSpace(e.CategoryName) == "":
		return fmt.Errorf("%w: missing category", ErrValidation)
	case e.Timestamp.IsZero():
		return fmt.Errorf("%w: missing timestamp", ErrValidation)
	}

	return nil
}

// Get looks up an expenditure by id, case-insensitively.
func (s *Store) Get(id string) (*Expenditure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.Get(normalizeID(id))
	if !ok {
		return nil, ErrNotFound
	}

	return e, nil
}

// All returns every expenditure in insertion order.
func (s *Store) All() []*Expenditure {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.Slice()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.Len()
}

// TotalForAccount sums the amounts recorded against an account.
func (s *Store) TotalForAccount(accountID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero

	for e := range s.items.All() {
		if e.AccountID == accountID {
			total = total.Add(e.Amount)
		}
	}

	return total
}

// NextID reserves and returns the next auto-generated id.
func (s *Store) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++

	return fmt.Sprintf("%s%04d", s.idPrefix, s.counter)
}

// ResetCounter forces the id counter; it exists for tests.
func (s *Store) ResetCounter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter = n
}

// seedCounter advances the counter past the trailing numeric suffix of id.
// Callers hold s.mu.
func (s *Store) seedCounter(id string) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}

	if i == len(id) {
		return
	}

	n := 0
	for _, c := range id[i:] {
		n = n*10 + int(c-'0')
	}

	if n > s.counter {
		s.counter = n
	}
}

// AttachReceipt records a receipt against an existing expenditure and returns
// the stored receipt.
func (s *Store) AttachReceipt(expenditureID, filePath string) (*Receipt, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, fmt.Errorf("%w: blank receipt path", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.Get(normalizeID(expenditureID))
	if !ok {
		return nil, ErrNotFound
	}

	r := &Receipt{
		ID:          uuid.NewString(),
		ExpenseCode: e.ID,
		FilePath:    filePath,
		Timestamp:   time.Now(),
	}

	s.receipts.Append(r)
	e.ReceiptID = r.ID

	return r, nil
}

// AddReceipt appends an already-decoded receipt record, used when loading
// persisted state.
func (s *Store) AddReceipt(r *Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.receipts.Append(r)
}

// Receipts returns every receipt in insertion order.
func (s *Store) Receipts() []*Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.receipts.Slice()
}
