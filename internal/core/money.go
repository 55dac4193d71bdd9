// Package core holds the sales domain: sale records, money, calendar dates
// and the product catalog.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

const maxWholeUnits = (1<<63 - 1) / 100

// ParseMoney reads a non-negative decimal amount such as "12.34", "12,34" or
// "0". Digits past the second decimal are rounded half-up on the third.
func ParseMoney(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if s == "." || !allDigits(whole) || !allDigits(frac) {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > maxWholeUnits {
		return Money{}, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}

	cents := units * 100
	if len(frac) > 0 {
		cents += int64(frac[0]-'0') * 10
	}
	if len(frac) > 1 {
		cents += int64(frac[1] - '0')
	}
	if len(frac) > 2 && frac[2] >= '5' {
		cents++
	}
	return Money{Cents: cents}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Float64 returns the amount in currency units for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}
