package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date stored as UTC midnight.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Sale is a single sales transaction. Values are created once and never mutated.
	Sale struct {
		ID        int64
		Product   string
		Quantity  int
		UnitPrice Money
		Date      time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidID        = errors.New("invalid sale id")
	ErrEmptyProduct     = errors.New("empty product")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidPrice     = errors.New("invalid unit price")
	ErrInvalidTimestamp = errors.New("invalid sale timestamp")

	ErrUnknownProduct = errors.New("unknown product")
	ErrEmptyStore     = errors.New("no sales recorded")
	ErrDuplicateID    = errors.New("duplicate sale id")
)

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Before reports whether d is an earlier calendar day than o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

const DateLayout = "2006-01-02"

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date as seen on t's own wall clock.
// The process time zone plays no part, so the same timestamp always maps to
// the same Date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Times returns m multiplied by a quantity.
func (m Money) Times(qty int) Money {
	return Money{Cents: m.Cents * int64(qty)}
}

// Total is the line total of the sale: quantity times unit price.
func (s Sale) Total() Money {
	return s.UnitPrice.Times(s.Quantity)
}

// Day returns the calendar date the sale happened on.
func (s Sale) Day() Date {
	return DateOf(s.Date)
}

func (s Sale) Validate() error {
	if s.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(s.Product) == "" {
		return ErrEmptyProduct
	}
	if s.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	// Zero is a legitimate price, only negatives are rejected.
	if s.UnitPrice.Cents < 0 {
		return ErrInvalidPrice
	}
	if s.Date.IsZero() {
		return ErrInvalidTimestamp
	}
	return nil
}
