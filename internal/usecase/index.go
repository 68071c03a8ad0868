package usecase

import "github.com/costlens/backend/internal/domain"

// indexedItem is a catalog item with its normalized form precomputed
type indexedItem struct {
	normalized string
	entry      domain.LookupEntry
}

// Index holds the lookup structures derived from a catalog. It is built once
// and never modified, so a single Index may be shared by concurrent requests.
type Index struct {
	catalog *domain.Catalog

	// lookup maps a normalized label to its catalog entry. When two items
	// normalize identically the later one wins.
	lookup map[string]domain.LookupEntry

	// tokens maps a significant word to the normalized labels containing it
	tokens map[string][]string

	// order lists distinct normalized labels by first declaration
	order []string

	// items lists every catalog item in declaration order
	items []indexedItem
}

// BuildIndex walks the catalog in declaration order and builds the exact
// lookup table and the inverted token index.
func BuildIndex(catalog *domain.Catalog) *Index {
	idx := &Index{
		catalog: catalog,
		lookup:  make(map[string]domain.LookupEntry),
		tokens:  make(map[string][]string),
	}

	for _, category := range catalog.Categories {
		for _, item := range category.Items {
			norm := Normalize(item)
			entry := domain.LookupEntry{Category: category.Name, Item: item}

			if _, exists := idx.lookup[norm]; !exists {
				idx.order = append(idx.order, norm)
			}
			idx.lookup[norm] = entry
			idx.items = append(idx.items, indexedItem{normalized: norm, entry: entry})

			for _, token := range Tokens(norm) {
				idx.addToken(token, norm)
			}
		}
	}

	return idx
}

func (idx *Index) addToken(token, norm string) {
	for _, existing := range idx.tokens[token] {
		if existing == norm {
			return
		}
	}
	idx.tokens[token] = append(idx.tokens[token], norm)
}

// Catalog returns the catalog the index was built from
func (idx *Index) Catalog() *domain.Catalog {
	return idx.catalog
}

// Lookup returns the catalog entry for an exact normalized label
func (idx *Index) Lookup(normalized string) (domain.LookupEntry, bool) {
	entry, ok := idx.lookup[normalized]
	return entry, ok
}

// Candidates returns the normalized labels indexed under any of the given
// tokens, ordered by catalog declaration.
func (idx *Index) Candidates(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	found := make(map[string]bool)
	for _, token := range tokens {
		for _, norm := range idx.tokens[token] {
			found[norm] = true
		}
	}
	if len(found) == 0 {
		return nil
	}

	candidates := make([]string, 0, len(found))
	for _, norm := range idx.order {
		if found[norm] {
			candidates = append(candidates, norm)
		}
	}

	return candidates
}

// Size returns the number of distinct normalized labels
func (idx *Index) Size() int {
	return len(idx.lookup)
}
