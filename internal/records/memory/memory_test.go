package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ventas/internal/core"
)

func sale(id int64, product string) core.Sale {
	return core.Sale{
		ID:        id,
		Product:   product,
		Quantity:  1,
		UnitPrice: core.Money{Cents: 123},
		Date:      time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStoreAppendAndList(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i, p := range []string{"TV", "Mesa", "TV"} {
		ref, err := s.Append(ctx, sale(int64(i+1), p))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if want := fmt.Sprintf("mem:%d", i+1); ref != want {
			t.Fatalf("expected ref %q, got %q", want, ref)
		}
	}

	got, err := s.ListSales(ctx)
	if err != nil || len(got) != 3 {
		t.Fatalf("unexpected list: %v err=%v", got, err)
	}
	if got[0].Product != "TV" || got[1].Product != "Mesa" || got[2].ID != 3 {
		t.Fatalf("insertion order not preserved: %+v", got)
	}

	got[0].Product = "changed"
	again, _ := s.ListSales(ctx)
	if again[0].Product != "TV" {
		t.Fatalf("store mutated through returned slice")
	}
}

func TestMemoryStoreRejectsInvalidAndDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.Append(ctx, core.Sale{ID: 1}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := s.Append(ctx, sale(1, "TV")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := s.Append(ctx, sale(1, "Mesa")); !errors.Is(err, core.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 sale, got %d", s.Len())
	}
}

func TestNewWithSales(t *testing.T) {
	s, err := NewWithSales([]core.Sale{sale(1, "TV"), sale(2, "Silla")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 sales, got %d", s.Len())
	}
	if _, err := NewWithSales([]core.Sale{sale(1, "TV"), sale(1, "TV")}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestEmptyStoreListsNothing(t *testing.T) {
	got, err := New().ListSales(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", got, err)
	}
}

func TestZeroValueStore(t *testing.T) {
	var s Store
	ctx := context.Background()
	if _, err := s.Append(ctx, sale(1, "TV")); err != nil {
		t.Fatalf("append on zero value: %v", err)
	}
	if _, err := s.Append(ctx, sale(1, "TV")); !errors.Is(err, core.ErrDuplicateID) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 sale, got %d", s.Len())
	}
}
