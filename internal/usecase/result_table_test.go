package usecase

import (
	"reflect"
	"testing"

	"github.com/costlens/backend/internal/catalog"
	"github.com/costlens/backend/internal/domain"
)

func newDefaultTable(t *testing.T) *ResultTable {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	return NewResultTable(cat)
}

func matched(category, item, price string) domain.MatchResult {
	return domain.Matched(domain.TierExact, domain.LookupEntry{Category: category, Item: item}, price, domain.ScrapedRow{Label: item, Price: price})
}

func TestResultTableRecord(t *testing.T) {
	t.Run("recording twice equals recording once", func(t *testing.T) {
		once := newDefaultTable(t)
		once.Record(matched("Markets", "Apples (1kg)", "₹150"))

		twice := newDefaultTable(t)
		twice.Record(matched("Markets", "Apples (1kg)", "₹150"))
		twice.Record(matched("Markets", "Apples (1kg)", "₹150"))

		if !reflect.DeepEqual(once.Categories(), twice.Categories()) {
			t.Errorf("Categories differ: %v vs %v", once.Categories(), twice.Categories())
		}
		if twice.Len() != 1 {
			t.Errorf("Len() = %d, want 1", twice.Len())
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		table := newDefaultTable(t)
		table.Record(matched("Markets", "Apples (1kg)", "₹150"))
		table.Record(matched("Markets", "Apples (1kg)", "₹175"))

		price, ok := table.Price("Markets", "Apples (1kg)")
		if !ok || price != "₹175" {
			t.Errorf("Price = %q, %v, want ₹175", price, ok)
		}
	})

	t.Run("unmatched rows keep scrape order", func(t *testing.T) {
		table := newDefaultTable(t)
		table.Record(domain.Unmatched(domain.ScrapedRow{Label: "B", Price: "2"}))
		table.Record(domain.Unmatched(domain.ScrapedRow{Label: "A", Price: "1"}))

		want := []domain.ScrapedRow{{Label: "B", Price: "2"}, {Label: "A", Price: "1"}}
		if got := table.Unmatched(); !reflect.DeepEqual(got, want) {
			t.Errorf("Unmatched() = %v, want %v", got, want)
		}
		if table.Len() != 0 {
			t.Errorf("Len() = %d, want 0", table.Len())
		}
	})

	t.Run("empty table has an empty unmatched list", func(t *testing.T) {
		table := newDefaultTable(t)
		if got := table.Unmatched(); got == nil || len(got) != 0 {
			t.Errorf("Unmatched() = %#v, want empty slice", got)
		}
	})
}

func TestResultTableCategories(t *testing.T) {
	table := newDefaultTable(t)
	table.Record(matched("Restaurants", "Cappuccino (regular)", "₹180"))
	table.Record(matched("Markets", "Onion (1kg)", "₹40"))
	table.Record(matched("Markets", "Milk (regular), (1 liter)", "₹60.00"))

	categories := table.Categories()
	if len(categories) != 10 {
		t.Fatalf("len(Categories()) = %d, want 10", len(categories))
	}

	if categories[0].Name != "Markets" || categories[1].Name != "Restaurants" {
		t.Errorf("category order = %q, %q, want Markets, Restaurants", categories[0].Name, categories[1].Name)
	}

	wantMarkets := []domain.ItemPrice{
		{Item: "Milk (regular), (1 liter)", Price: "₹60.00"},
		{Item: "Onion (1kg)", Price: "₹40"},
	}
	if !reflect.DeepEqual(categories[0].Items, wantMarkets) {
		t.Errorf("Markets items = %v, want %v", categories[0].Items, wantMarkets)
	}

	if len(categories[2].Items) != 0 {
		t.Errorf("Transportation items = %v, want none", categories[2].Items)
	}
}
