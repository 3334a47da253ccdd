package catalog

import "strings"

// Searcher is the catalog collaborator consumed by the plan builder.
type Searcher interface {
	Search(query string) []Product
}

// MemorySearcher performs case-insensitive substring matching over an
// in-memory product list.
type MemorySearcher struct {
	products []Product
}

func NewMemorySearcher(products []Product) *MemorySearcher {
	return &MemorySearcher{products: products}
}

func (s *MemorySearcher) Search(query string) []Product {
	if query == "" {
		return append([]Product(nil), s.products...)
	}
	var results []Product
	for _, product := range s.products {
		if matches(product, query) {
			results = append(results, product)
		}
	}
	return results
}

// All returns the full catalog.
func (s *MemorySearcher) All() []Product {
	return append([]Product(nil), s.products...)
}

// FindByIDs returns products for the given ids, preserving request order.
func (s *MemorySearcher) FindByIDs(ids []string) []Product {
	var results []Product
	for _, id := range ids {
		for _, product := range s.products {
			if product.ID == id {
				results = append(results, product)
				break
			}
		}
	}
	return results
}

func matches(product Product, query string) bool {
	queryLower := strings.ToLower(query)
	haystack := []string{product.Name, product.Description}
	haystack = append(haystack, product.Tags...)
	haystack = append(haystack, product.CapabilitiesEnabled...)
	for _, item := range haystack {
		if strings.Contains(strings.ToLower(item), queryLower) {
			return true
		}
	}
	return false
}
