package core

import (
	"errors"
	"testing"
	"time"
)

func TestDateOfDropsTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	if DateOf(morning) != DateOf(evening) {
		t.Fatalf("expected same date, got %v and %v", DateOf(morning), DateOf(evening))
	}
	if got := DateOf(morning).String(); got != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", got)
	}
}

func TestDateOfUsesWallClockOfTimestamp(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC; the sale still belongs to
	// the day printed on its own clock.
	loc := time.FixedZone("UTC-5", -5*60*60)
	ts := time.Date(2024, 3, 10, 23, 30, 0, 0, loc)
	if got := DateOf(ts); got != NewDate(2024, 3, 10) {
		t.Fatalf("expected 2024-03-10, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-02-28 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != NewDate(2025, 2, 28) {
		t.Fatalf("unexpected date %s", d)
	}
	if _, err := ParseDate("28/02/2025"); err == nil {
		t.Fatalf("expected error for bad layout")
	}
}

func TestSaleTotal(t *testing.T) {
	s := Sale{Quantity: 3, UnitPrice: Money{Cents: 1999}}
	if got := s.Total(); got.Cents != 5997 {
		t.Fatalf("expected 5997 cents, got %d", got.Cents)
	}
}

func TestSaleValidate(t *testing.T) {
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	good := Sale{ID: 1, Product: "TV", Quantity: 1, UnitPrice: Money{Cents: 0}, Date: ts}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok for zero price, got %v", err)
	}

	bads := []struct {
		sale Sale
		want error
	}{
		{Sale{ID: 0, Product: "TV", Quantity: 1, Date: ts}, ErrInvalidID},
		{Sale{ID: 1, Product: " ", Quantity: 1, Date: ts}, ErrEmptyProduct},
		{Sale{ID: 1, Product: "TV", Quantity: 0, Date: ts}, ErrInvalidQuantity},
		{Sale{ID: 1, Product: "TV", Quantity: 1, UnitPrice: Money{Cents: -1}, Date: ts}, ErrInvalidPrice},
		{Sale{ID: 1, Product: "TV", Quantity: 1}, ErrInvalidTimestamp},
	}
	for i, tc := range bads {
		if err := tc.sale.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}
