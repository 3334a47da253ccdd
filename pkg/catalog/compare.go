package catalog

import (
	"fmt"
	"strings"
)

// Compare renders a pipe-delimited table over basic product attributes.
func Compare(products []Product) string {
	lines := []string{"ID | Name | Price | Confidence | Source"}
	for _, product := range products {
		lines = append(lines, fmt.Sprintf(
			"%s | %s | $%g | %.2f | %s",
			product.ID, product.Name, product.Price, product.Confidence, product.Source,
		))
	}
	return strings.Join(lines, "\n")
}
