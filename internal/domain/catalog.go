package domain

import "fmt"

// Category is a named, ordered group of canonical item labels.
type Category struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

// Catalog is the fixed set of categories scraped labels are matched against.
// Category and item order is significant: it drives fallback tie-breaking and
// the order of rendered results.
type Catalog struct {
	Categories []Category `json:"categories" yaml:"categories"`
}

// LookupEntry is the target of an exact-match lookup. Item keeps the original
// casing and punctuation for display.
type LookupEntry struct {
	Category string
	Item     string
}

// CategoryNames returns category names in declaration order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	return names
}

// Validate checks that category names are unique and non-empty and that no
// category lists the same item twice.
func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no categories defined", ErrInvalidCatalog)
	}

	seenCategories := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidCatalog, i)
		}
		if seenCategories[cat.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, cat.Name)
		}
		seenCategories[cat.Name] = true

		seenItems := make(map[string]bool, len(cat.Items))
		for _, item := range cat.Items {
			if item == "" {
				return fmt.Errorf("%w: empty item in category %q", ErrInvalidCatalog, cat.Name)
			}
			if seenItems[item] {
				return fmt.Errorf("%w: duplicate item %q in category %q", ErrInvalidCatalog, item, cat.Name)
			}
			seenItems[item] = true
		}
	}

	return nil
}
