package usecase

import (
	"reflect"
	"testing"

	"github.com/costlens/backend/internal/catalog"
	"github.com/costlens/backend/internal/domain"
)

func defaultIndex(t *testing.T) *Index {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	return BuildIndex(cat)
}

func TestBuildIndex(t *testing.T) {
	idx := defaultIndex(t)

	t.Run("indexes every distinct normalized label", func(t *testing.T) {
		// 55 items, "Imported Beer (0.33 liter bottle)" is listed twice
		if idx.Size() != 54 {
			t.Errorf("Size() = %d, want 54", idx.Size())
		}
	})

	t.Run("exact lookup preserves original label", func(t *testing.T) {
		entry, ok := idx.Lookup("rice white 1kg")
		if !ok {
			t.Fatal("expected rice to be indexed")
		}
		want := domain.LookupEntry{Category: "Markets", Item: "Rice (white), (1kg)"}
		if entry != want {
			t.Errorf("Lookup = %+v, want %+v", entry, want)
		}
	})

	t.Run("later duplicate wins the exact lookup", func(t *testing.T) {
		entry, ok := idx.Lookup(Normalize("Imported Beer (0.33 liter bottle)"))
		if !ok {
			t.Fatal("expected imported beer to be indexed")
		}
		if entry.Category != "Restaurants" {
			t.Errorf("Category = %q, want Restaurants", entry.Category)
		}
	})

	t.Run("candidates follow declaration order", func(t *testing.T) {
		got := idx.Candidates([]string{"beer"})
		want := []string{
			"domestic beer 0 5 liter bottle",
			"imported beer 0 33 liter bottle",
			"domestic beer 0 5 liter draught",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Candidates(beer) = %v, want %v", got, want)
		}
	})

	t.Run("unknown tokens yield no candidates", func(t *testing.T) {
		if got := idx.Candidates([]string{"spaceship"}); len(got) != 0 {
			t.Errorf("Candidates(spaceship) = %v, want none", got)
		}
		if got := idx.Candidates(nil); got != nil {
			t.Errorf("Candidates(nil) = %v, want nil", got)
		}
	})
}

func TestBuildIndexTokenSets(t *testing.T) {
	cat := &domain.Catalog{Categories: []domain.Category{
		{Name: "Drinks", Items: []string{"Tea, tea time", "Green Tea"}},
	}}
	idx := BuildIndex(cat)

	want := []string{"tea tea time", "green tea"}
	if got := idx.tokens["tea"]; !reflect.DeepEqual(got, want) {
		t.Errorf("tokens[tea] = %v, want %v", got, want)
	}
	if _, ok := idx.tokens["a"]; ok {
		t.Error("short words must not be indexed")
	}
}

func TestBuildIndexLastInsertionWins(t *testing.T) {
	cat := &domain.Catalog{Categories: []domain.Category{
		{Name: "First", Items: []string{"Tea"}},
		{Name: "Second", Items: []string{"TEA!"}},
	}}
	idx := BuildIndex(cat)

	entry, _ := idx.Lookup("tea")
	want := domain.LookupEntry{Category: "Second", Item: "TEA!"}
	if entry != want {
		t.Errorf("Lookup(tea) = %+v, want %+v", entry, want)
	}
	if idx.Size() != 1 {
		t.Errorf("Size() = %d, want 1", idx.Size())
	}
}
