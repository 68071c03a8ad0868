package usecase

import "github.com/costlens/backend/internal/domain"

// ResultTable accumulates the outcome of one lookup. Matched prices are kept
// per category and item; rendering follows catalog declaration order, not the
// order rows were recorded. A ResultTable belongs to a single request.
type ResultTable struct {
	catalog   *domain.Catalog
	prices    map[string]map[string]string
	unmatched []domain.ScrapedRow
}

// NewResultTable creates an empty table for the given catalog
func NewResultTable(catalog *domain.Catalog) *ResultTable {
	prices := make(map[string]map[string]string, len(catalog.Categories))
	for _, category := range catalog.Categories {
		prices[category.Name] = make(map[string]string)
	}

	return &ResultTable{
		catalog: catalog,
		prices:  prices,
	}
}

// Record stores a match result. A later price for the same item replaces the
// earlier one; unmatched results are appended to the unmatched list.
func (t *ResultTable) Record(result domain.MatchResult) {
	if !result.Matched {
		t.unmatched = append(t.unmatched, result.Row)
		return
	}

	items, ok := t.prices[result.Category]
	if !ok {
		items = make(map[string]string)
		t.prices[result.Category] = items
	}
	items[result.Item] = result.Price
}

// Price returns the recorded price for an item
func (t *ResultTable) Price(category, item string) (string, bool) {
	price, ok := t.prices[category][item]
	return price, ok
}

// Len returns the number of priced items
func (t *ResultTable) Len() int {
	n := 0
	for _, items := range t.prices {
		n += len(items)
	}
	return n
}

// Categories returns every catalog category in declaration order, each with
// its priced items in declaration order. Items without a price are omitted.
func (t *ResultTable) Categories() []domain.CategoryPrices {
	out := make([]domain.CategoryPrices, 0, len(t.catalog.Categories))
	for _, category := range t.catalog.Categories {
		recorded := t.prices[category.Name]
		items := make([]domain.ItemPrice, 0, len(recorded))
		for _, item := range category.Items {
			if price, ok := recorded[item]; ok {
				items = append(items, domain.ItemPrice{Item: item, Price: price})
			}
		}
		out = append(out, domain.CategoryPrices{Name: category.Name, Items: items})
	}
	return out
}

// Unmatched returns the rows no tier could classify, in the order recorded
func (t *ResultTable) Unmatched() []domain.ScrapedRow {
	out := make([]domain.ScrapedRow, len(t.unmatched))
	copy(out, t.unmatched)
	return out
}
