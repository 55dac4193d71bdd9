// Package generator produces synthetic sales for a catalog.
package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"ventas/internal/core"
)

const (
	DefaultMaxQuantity = 10
	DefaultMinPrice    = 1000  // cents
	DefaultMaxPrice    = 50000 // cents
	DefaultDaysBack    = 30
)

var ErrInvalidCount = errors.New("invalid sale count")

// Generator builds random sales. It is not safe for concurrent use.
type Generator struct {
	rng         *rand.Rand
	seed        uint64
	seeded      bool
	now         func() time.Time
	products    []string
	maxQuantity int
	minPrice    int64
	maxPrice    int64
	daysBack    int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed fixes the seed of the PCG source. Without it the seed comes from the clock.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
	}
}

// WithClock sets the function returning "now".
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithMaxQuantity sets the inclusive upper bound for quantities. The lower bound is 1.
func WithMaxQuantity(n int) Option {
	return func(g *Generator) { g.maxQuantity = n }
}

// WithPriceRange sets the inclusive unit price range.
func WithPriceRange(lo, hi core.Money) Option {
	return func(g *Generator) {
		g.minPrice = lo.Cents
		g.maxPrice = hi.Cents
	}
}

// WithDaysBack sets how many days into the past sale dates may fall.
func WithDaysBack(n int) Option {
	return func(g *Generator) { g.daysBack = n }
}

// New returns a Generator drawing products from catalog.
func New(catalog core.Catalog, opts ...Option) (*Generator, error) {
	g := &Generator{
		now:         time.Now,
		products:    catalog.Products(),
		maxQuantity: DefaultMaxQuantity,
		minPrice:    DefaultMinPrice,
		maxPrice:    DefaultMaxPrice,
		daysBack:    DefaultDaysBack,
	}
	for _, opt := range opts {
		opt(g)
	}
	if !g.seeded {
		g.seed = uint64(g.now().UnixNano())
	}
	g.rng = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))

	if len(g.products) == 0 {
		return nil, core.ErrEmptyCatalog
	}
	if g.maxQuantity < 1 {
		return nil, fmt.Errorf("%w: max %d", core.ErrInvalidQuantity, g.maxQuantity)
	}
	if g.minPrice < 0 || g.maxPrice < g.minPrice {
		return nil, fmt.Errorf("%w: range [%d, %d] cents", core.ErrInvalidPrice, g.minPrice, g.maxPrice)
	}
	if g.daysBack < 0 {
		return nil, fmt.Errorf("invalid days back: %d", g.daysBack)
	}
	return g, nil
}

// Seed returns the seed in use, so a run can be reproduced.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Generate returns n sales with IDs 1..n.
func (g *Generator) Generate(n int) ([]core.Sale, error) {
	return g.GenerateFrom(1, n)
}

// GenerateFrom returns n sales with IDs first..first+n-1.
func (g *Generator) GenerateFrom(first int64, n int) ([]core.Sale, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	if first < 1 {
		return nil, fmt.Errorf("%w: first id %d", core.ErrInvalidID, first)
	}
	now := g.now()
	sales := make([]core.Sale, 0, n)
	for i := 0; i < n; i++ {
		sales = append(sales, core.Sale{
			ID:        first + int64(i),
			Product:   g.products[g.rng.IntN(len(g.products))],
			Quantity:  1 + g.rng.IntN(g.maxQuantity),
			UnitPrice: core.Money{Cents: g.minPrice + g.rng.Int64N(g.maxPrice-g.minPrice+1)},
			Date:      now.AddDate(0, 0, -g.rng.IntN(g.daysBack+1)),
		})
	}
	return sales, nil
}
