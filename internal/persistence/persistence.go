// Package persistence defines the collaborator contract the core uses to load
// and save entity records, plus the pipe-delimited record codecs. The core
// itself never touches files or databases; backends live in subpackages.
package persistence

import (
	"context"
	"errors"
)

// Kind names one persisted entity collection.
type Kind string

const (
	KindAccounts     Kind = "accounts"
	KindCategories   Kind = "categories"
	KindExpenditures Kind = "expenditures"
	KindReceipts     Kind = "receipts"
)

// Record is one decoded persisted record: an ordered list of fields.
type Record []string

var ErrPersistence = errors.New("persistence failure")

//go:generate mockgen -source=persistence.go -destination=persister_mock.go -package=persistence
type Persister interface {
	// Load returns the decoded records of a kind in stored order.
	Load(ctx context.Context, kind Kind) ([]Record, error)
	// Save replaces the stored records of a kind.
	Save(ctx context.Context, kind Kind, records []Record) error
}
