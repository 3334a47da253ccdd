package catalog

// Product is the LLM-ready representation that powers reasoning and
// empowerment metrics.
type Product struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Price               float64  `json:"price"`
	Tags                []string `json:"tags"`
	Description         string   `json:"description"`
	CapabilitiesEnabled []string `json:"capabilities_enabled"`
	Brand               string   `json:"brand,omitempty"`
	Category            string   `json:"category,omitempty"`
	Availability        string   `json:"availability"`
	Source              string   `json:"source"`
	MerchantName        string   `json:"merchant_name,omitempty"`
	OfferURL            string   `json:"offer_url,omitempty"`
	Confidence          float64  `json:"confidence"`
}

// ProductSummary is the flattened shape handed to the plan builder and the
// reasoning agent. Reasoning is filled in by the product reasoner.
type ProductSummary struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Price               float64  `json:"price"`
	Confidence          float64  `json:"confidence"`
	Source              string   `json:"source"`
	MerchantName        string   `json:"merchant_name,omitempty"`
	OfferURL            string   `json:"offer_url,omitempty"`
	CapabilitiesEnabled []string `json:"capabilities_enabled"`
	Reasoning           string   `json:"reasoning,omitempty"`
}

// Summarize flattens a product for plan payloads.
func Summarize(product Product) ProductSummary {
	return ProductSummary{
		ID:                  product.ID,
		Name:                product.Name,
		Price:               product.Price,
		Confidence:          product.Confidence,
		Source:              product.Source,
		MerchantName:        product.MerchantName,
		OfferURL:            product.OfferURL,
		CapabilitiesEnabled: product.CapabilitiesEnabled,
	}
}

// SummarizeAll flattens a product slice preserving order.
func SummarizeAll(products []Product) []ProductSummary {
	summaries := make([]ProductSummary, len(products))
	for i, product := range products {
		summaries[i] = Summarize(product)
	}
	return summaries
}
