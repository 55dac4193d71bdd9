package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrEmptyCatalog      = errors.New("empty catalog")
	ErrEmptyCategory     = errors.New("empty category name")
	ErrDuplicateProduct  = errors.New("product listed in more than one category")
	ErrDuplicateCategory = errors.New("duplicate category")
)

// Category is a named group of products.
type Category struct {
	Name     string
	Products []string
}

// Catalog is a fixed partition of product names into categories.
// Every product belongs to exactly one category; NewCatalog enforces it.
type Catalog struct {
	categories []Category
	byProduct  map[string]string
}

// NewCatalog validates the categories and builds the product index.
// Category and product order is preserved.
func NewCatalog(categories ...Category) (Catalog, error) {
	c := Catalog{
		categories: make([]Category, 0, len(categories)),
		byProduct:  make(map[string]string),
	}
	seen := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return Catalog{}, ErrEmptyCategory
		}
		if _, ok := seen[name]; ok {
			return Catalog{}, fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}
		seen[name] = struct{}{}

		products := make([]string, 0, len(cat.Products))
		for _, p := range cat.Products {
			p = strings.TrimSpace(p)
			if p == "" {
				return Catalog{}, fmt.Errorf("category %q: %w", name, ErrEmptyProduct)
			}
			if other, ok := c.byProduct[p]; ok {
				return Catalog{}, fmt.Errorf("%w: %q in %q and %q", ErrDuplicateProduct, p, other, name)
			}
			c.byProduct[p] = name
			products = append(products, p)
		}
		c.categories = append(c.categories, Category{Name: name, Products: products})
	}
	if len(c.byProduct) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	return c, nil
}

// DefaultCatalog is the built-in store catalog.
func DefaultCatalog() Catalog {
	c, err := NewCatalog(
		Category{Name: "Electrónica", Products: []string{"TV", "Laptop", "Celular"}},
		Category{Name: "Ropa", Products: []string{"Camisa", "Pantalón", "Zapatos"}},
		Category{Name: "Hogar", Products: []string{"Silla", "Mesa", "Lámpara"}},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// CategoryOf returns the category a product belongs to.
func (c Catalog) CategoryOf(product string) (string, bool) {
	name, ok := c.byProduct[product]
	return name, ok
}

// Categories returns the categories in catalog order.
func (c Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Products: append([]string(nil), cat.Products...)}
	}
	return out
}

// CategoryNames returns the category names in catalog order.
func (c Catalog) CategoryNames() []string {
	out := make([]string, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.Name
	}
	return out
}

// Products returns every product, flattened in catalog order.
func (c Catalog) Products() []string {
	out := make([]string, 0, len(c.byProduct))
	for _, cat := range c.categories {
		out = append(out, cat.Products...)
	}
	return out
}

// Len returns the number of products.
func (c Catalog) Len() int {
	return len(c.byProduct)
}

// LoadCatalogFile reads a catalog from path. See ParseCatalog for the format.
func LoadCatalogFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// ParseCatalog reads one category per line in the form
//
//	Category: product, product, ...
//
// Blank lines and lines starting with # are ignored.
func ParseCatalog(r io.Reader) (Catalog, error) {
	var categories []Category
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, list, ok := strings.Cut(line, ":")
		if !ok {
			return Catalog{}, fmt.Errorf("catalog line %d: missing ':' separator", lineNo)
		}
		var products []string
		for _, p := range strings.Split(list, ",") {
			if p = strings.TrimSpace(p); p != "" {
				products = append(products, p)
			}
		}
		categories = append(categories, Category{Name: name, Products: products})
	}
	if err := sc.Err(); err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return NewCatalog(categories...)
}
