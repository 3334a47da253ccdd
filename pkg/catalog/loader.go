package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/catalog.json
var catalogData embed.FS

// ErrUnsupportedSource is wrapped by NewSearcher for unknown catalog sources.
// It is fatal at configuration time; there is no runtime fallback.
var ErrUnsupportedSource = fmt.Errorf("unsupported catalog source")

// LoadEmbedded parses the bundled demo catalog.
func LoadEmbedded() ([]Product, error) {
	raw, err := catalogData.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return products, nil
}

// NewSearcher builds a Searcher for the named catalog source. Live feed
// adapters (shopify, google merchant) are external collaborators and are not
// bundled here; only the embedded demo catalog is selectable.
func NewSearcher(source string) (Searcher, error) {
	switch source {
	case "", "embedded", "mock":
		products, err := LoadEmbedded()
		if err != nil {
			return nil, err
		}
		return NewMemorySearcher(products), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}
}
