// Package aggregate computes the sales reports: totals by category, the
// best-selling product and totals per calendar day.
//
// Every function is a single pass over the given sales. Inputs are never
// modified, so the functions are safe to call concurrently on a shared slice.
package aggregate

import (
	"fmt"
	"sort"

	"ventas/internal/core"
)

// TotalsByCategory sums quantity*unit price per category. Categories without
// sales are absent from the result. A sale whose product is not in the
// catalog aborts the computation with core.ErrUnknownProduct.
func TotalsByCategory(sales []core.Sale, catalog core.Catalog) (map[string]core.Money, error) {
	totals := make(map[string]core.Money)
	for _, s := range sales {
		category, ok := catalog.CategoryOf(s.Product)
		if !ok {
			return nil, fmt.Errorf("sale %d: %w: %q", s.ID, core.ErrUnknownProduct, s.Product)
		}
		totals[category] = totals[category].Add(s.Total())
	}
	return totals, nil
}

// TopProduct returns the product with the largest total quantity sold.
// On a tie the product seen first wins.
func TopProduct(sales []core.Sale) (core.ProductQuantity, error) {
	if len(sales) == 0 {
		return core.ProductQuantity{}, core.ErrEmptyStore
	}

	quantities := make(map[string]int)
	var order []string
	for _, s := range sales {
		if _, ok := quantities[s.Product]; !ok {
			order = append(order, s.Product)
		}
		quantities[s.Product] += s.Quantity
	}

	best := core.ProductQuantity{Product: order[0], Quantity: quantities[order[0]]}
	for _, p := range order[1:] {
		if q := quantities[p]; q > best.Quantity {
			best = core.ProductQuantity{Product: p, Quantity: q}
		}
	}
	return best, nil
}

// DailyTotals sums quantity*unit price per calendar day.
func DailyTotals(sales []core.Sale) map[core.Date]core.Money {
	totals := make(map[core.Date]core.Money)
	for _, s := range sales {
		day := s.Day()
		totals[day] = totals[day].Add(s.Total())
	}
	return totals
}

// SortedCategories orders category totals by catalog order. Names missing
// from the catalog come last, alphabetically.
func SortedCategories(totals map[string]core.Money, catalog core.Catalog) []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(totals))
	seen := make(map[string]struct{}, len(totals))
	for _, name := range catalog.CategoryNames() {
		if amount, ok := totals[name]; ok {
			out = append(out, core.CategoryAmount{Name: name, Amount: amount})
			seen[name] = struct{}{}
		}
	}

	var rest []string
	for name := range totals {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, core.CategoryAmount{Name: name, Amount: totals[name]})
	}
	return out
}

// SortedDays returns daily totals in ascending date order.
func SortedDays(totals map[core.Date]core.Money) []core.DailyAmount {
	out := make([]core.DailyAmount, 0, len(totals))
	for day, amount := range totals {
		out = append(out, core.DailyAmount{Date: day, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// LastDays returns at most the last n entries of days, which must already be
// sorted ascending.
func LastDays(days []core.DailyAmount, n int) []core.DailyAmount {
	if n <= 0 {
		return nil
	}
	if len(days) <= n {
		return days
	}
	return days[len(days)-n:]
}
