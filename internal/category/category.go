// Package category maintains the classification buckets for expenditures and
// the per-category expenditure index. Category names are identity: uniqueness
// and lookup are case-insensitive, applied through explicit normalization at
// every boundary.
package category

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/blip-cmd/xpense/internal/container"
	"github.com/blip-cmd/xpense/internal/expenditure"
)

var (
	ErrValidation    = errors.New("invalid category")
	ErrDuplicateName = errors.New("category name already exists")
	ErrNotFound      = errors.New("category not found")
)

// Category is a named classification bucket. Name is the uniqueness key.
type Category struct {
	ID          string
	Name        string
	Description string
	Color       string
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Registry holds the unique category set and an index from category name to
// the ordered expenditures recorded under it.
type Registry struct {
	mu         sync.Mutex
	categories *container.Set[Category]
	byName     *container.Map[string, *container.List[*expenditure.Expenditure]]
}

func NewRegistry() *Registry {
	return &Registry{
		categories: container.NewSetFunc(func(a, b Category) bool {
			return normalizeName(a.Name) == normalizeName(b.Name)
		}),
		byName: container.NewMap[string, *container.List[*expenditure.Expenditure]](),
	}
}

// Add registers a category. The name must be non-blank and unused.
func (r *Registry) Add(c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: blank name", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.categories.Add(c) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, c.Name)
	}

	r.byName.Put(normalizeName(c.Name), container.NewList[*expenditure.Expenditure]())

	return nil
}

// Validate reports whether a category with the given name exists,
// case-insensitively.
func (r *Registry) Validate(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.byName.Contains(normalizeName(name))
}

// AddExpenditure appends an expenditure to the named category's index.
func (r *Registry) AddExpenditure(name string, e *expenditure.Expenditure) error {
	if e == nil {
		return fmt.Errorf("%w: nil expenditure", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.byName.Get(normalizeName(name))
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	list.Append(e)

	return nil
}

// Expenditures returns the expenditures recorded under the named category, in
// the order they were added.
func (r *Registry) Expenditures(name string) ([]*expenditure.Expenditure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.byName.Get(normalizeName(name))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return list.Slice(), nil
}

// All returns every category in insertion order.
func (r *Registry) All() []Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories := make([]Category, 0, r.categories.Len())
	for c := range r.categories.All() {
		categories = append(categories, c)
	}

	return categories
}
