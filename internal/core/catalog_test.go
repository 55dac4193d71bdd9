package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 9 {
		t.Fatalf("expected 9 products, got %d", c.Len())
	}
	names := c.CategoryNames()
	if strings.Join(names, ",") != "Electrónica,Ropa,Hogar" {
		t.Fatalf("unexpected category order: %v", names)
	}
	if cat, ok := c.CategoryOf("Lámpara"); !ok || cat != "Hogar" {
		t.Fatalf("expected Lámpara in Hogar, got %q %v", cat, ok)
	}
	if _, ok := c.CategoryOf("Tractor"); ok {
		t.Fatalf("expected Tractor to be unknown")
	}
	products := c.Products()
	if products[0] != "TV" || products[len(products)-1] != "Lámpara" {
		t.Fatalf("unexpected product order: %v", products)
	}
}

func TestNewCatalogRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		cats []Category
		want error
	}{
		{"no categories", nil, ErrEmptyCatalog},
		{"no products", []Category{{Name: "A"}}, ErrEmptyCatalog},
		{"blank category", []Category{{Name: " ", Products: []string{"x"}}}, ErrEmptyCategory},
		{"blank product", []Category{{Name: "A", Products: []string{""}}}, ErrEmptyProduct},
		{"duplicate category", []Category{{Name: "A", Products: []string{"x"}}, {Name: "A", Products: []string{"y"}}}, ErrDuplicateCategory},
		{"product in two categories", []Category{{Name: "A", Products: []string{"x"}}, {Name: "B", Products: []string{"x"}}}, ErrDuplicateProduct},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCatalog(tc.cats...); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	cats := c.Categories()
	cats[0].Products[0] = "changed"
	if c.Products()[0] != "TV" {
		t.Fatalf("catalog mutated through Categories()")
	}
}

func TestParseCatalog(t *testing.T) {
	in := "# store layout\n\nGarden: Hose, Rake\nKitchen: Pan,  Pot ,\n"
	c, err := ParseCatalog(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(c.Products(), ","); got != "Hose,Rake,Pan,Pot" {
		t.Fatalf("unexpected products %q", got)
	}
	if cat, _ := c.CategoryOf("Pot"); cat != "Kitchen" {
		t.Fatalf("expected Pot in Kitchen, got %q", cat)
	}

	if _, err := ParseCatalog(strings.NewReader("Garden Hose\n")); err == nil {
		t.Fatalf("expected error for missing separator")
	}
}

func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.txt")
	if err := os.WriteFile(path, []byte("A: x\nB: y\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	c, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", c.Len())
	}
	if _, err := LoadCatalogFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
