// Package catalog loads the set of canonical cost of living items that
// scraped labels are matched against.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/costlens/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default returns the built-in catalog.
func Default() (*domain.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file. An empty path yields the built-in catalog.
// Every failure, including an unreadable file, wraps domain.ErrInvalidCatalog.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog %s: %v", domain.ErrInvalidCatalog, path, err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*domain.Catalog, error) {
	var cat domain.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	return &cat, nil
}
