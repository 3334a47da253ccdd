package catalog

import (
	"strings"
	"testing"
)

func testProducts() []Product {
	return []Product{
		{
			ID:                  "desk-1",
			Name:                "Standing Desk",
			Tags:                []string{"office", "workspace"},
			Description:         "Height adjustable desk",
			CapabilitiesEnabled: []string{"standing work"},
			Price:               600,
			Confidence:          0.9,
			Source:              "shopify",
		},
		{
			ID:                  "lamp-1",
			Name:                "Desk Lamp",
			Tags:                []string{"lighting", "home"},
			Description:         "Warm light for evening reading",
			CapabilitiesEnabled: []string{"adjustable lighting"},
			Price:               40,
			Confidence:          0.7,
			Source:              "google_shopping",
		},
	}
}

func TestMemorySearcherSearch(t *testing.T) {
	searcher := NewMemorySearcher(testProducts())

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"name match", "standing", []string{"desk-1"}},
		{"tag match", "lighting", []string{"lamp-1"}},
		{"description match", "evening reading", []string{"lamp-1"}},
		{"capability match", "standing work", []string{"desk-1"}},
		{"case insensitive", "STANDING", []string{"desk-1"}},
		{"shared token", "desk", []string{"desk-1", "lamp-1"}},
		{"no match", "kayak", nil},
		{"empty query returns all", "", []string{"desk-1", "lamp-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := searcher.Search(tt.query)
			if len(results) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if results[i].ID != want {
					t.Errorf("results[%d].ID = %q, want %q", i, results[i].ID, want)
				}
			}
		})
	}
}

func TestMemorySearcherFindByIDs(t *testing.T) {
	searcher := NewMemorySearcher(testProducts())

	results := searcher.FindByIDs([]string{"lamp-1", "missing", "desk-1"})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Request order is preserved.
	if results[0].ID != "lamp-1" || results[1].ID != "desk-1" {
		t.Errorf("order = [%s, %s]", results[0].ID, results[1].ID)
	}
}

func TestLoadEmbedded(t *testing.T) {
	products, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	if len(products) == 0 {
		t.Fatal("embedded catalog is empty")
	}
	for _, product := range products {
		if product.ID == "" || product.Name == "" {
			t.Errorf("product missing identity: %+v", product)
		}
		if product.Confidence <= 0 || product.Confidence > 1 {
			t.Errorf("product %s confidence out of range: %v", product.ID, product.Confidence)
		}
	}
}

func TestNewSearcherUnsupportedSource(t *testing.T) {
	if _, err := NewSearcher("oracle"); err == nil {
		t.Fatal("expected an error for an unsupported source")
	}
}

func TestCompare(t *testing.T) {
	table := Compare(testProducts())

	lines := strings.Split(table, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "ID | Name | Price | Confidence | Source" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "desk-1 | Standing Desk | $600 | 0.90 | shopify") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestSummarize(t *testing.T) {
	product := testProducts()[0]
	summary := Summarize(product)

	if summary.ID != product.ID || summary.Name != product.Name {
		t.Errorf("summary identity mismatch: %+v", summary)
	}
	if summary.Confidence != product.Confidence || summary.Source != product.Source {
		t.Errorf("summary provenance mismatch: %+v", summary)
	}
	if len(summary.CapabilitiesEnabled) != len(product.CapabilitiesEnabled) {
		t.Errorf("summary capabilities mismatch: %+v", summary)
	}
}
