package dto

import "empower-commerce-be/pkg/catalog"

type ProductCompareRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type ProductSearchResponse struct {
	Query    string                   `json:"query"`
	Products []catalog.ProductSummary `json:"products"`
}

type ProductCompareResponse struct {
	Products   []catalog.ProductSummary `json:"products"`
	Comparison string                   `json:"comparison"`
}
