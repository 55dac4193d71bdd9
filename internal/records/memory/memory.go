package memory

import (
	"context"
	"fmt"
	"sync"

	"ventas/internal/core"
)

// Store keeps sales in insertion order. The zero value is ready to use.
type Store struct {
	mu    sync.Mutex
	ids   map[int64]struct{}
	items []core.Sale
}

func New() *Store {
	return &Store{ids: make(map[int64]struct{})}
}

// NewWithSales returns a store pre-filled with sales, in order.
func NewWithSales(sales []core.Sale) (*Store, error) {
	s := New()
	for _, sale := range sales {
		if _, err := s.Append(context.Background(), sale); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append stores the sale and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, sale core.Sale) (string, error) {
	if err := sale.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = make(map[int64]struct{})
	}
	if _, ok := s.ids[sale.ID]; ok {
		return "", fmt.Errorf("%w: %d", core.ErrDuplicateID, sale.ID)
	}
	s.ids[sale.ID] = struct{}{}
	s.items = append(s.items, sale)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// ListSales returns a copy of the stored sales.
func (s *Store) ListSales(_ context.Context) ([]core.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Sale(nil), s.items...), nil
}

// Len returns the number of stored sales.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
