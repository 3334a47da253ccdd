package service

import (
	"context"
	"fmt"
	"strings"

	"empower-commerce-be/internal/dto"
	"empower-commerce-be/pkg/catalog"
	"empower-commerce-be/pkg/session"
)

// ProductCatalog is the slice of the catalog the product endpoints need.
type ProductCatalog interface {
	Search(query string) []catalog.Product
	FindByIDs(ids []string) []catalog.Product
}

type IProductsService interface {
	Search(ctx context.Context, query string) (*dto.ProductSearchResponse, error)
	Compare(ctx context.Context, req *dto.ProductCompareRequest) (*dto.ProductCompareResponse, error)
}

type productsService struct {
	productCatalog ProductCatalog
}

func NewProductsService(productCatalog ProductCatalog) IProductsService {
	return &productsService{
		productCatalog: productCatalog,
	}
}

func (s *productsService) Search(ctx context.Context, query string) (*dto.ProductSearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", session.ErrValidation)
	}
	products := s.productCatalog.Search(query)
	return &dto.ProductSearchResponse{
		Query:    query,
		Products: catalog.SummarizeAll(products),
	}, nil
}

func (s *productsService) Compare(ctx context.Context, req *dto.ProductCompareRequest) (*dto.ProductCompareResponse, error) {
	products := s.productCatalog.FindByIDs(req.IDs)
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products matched the requested ids", session.ErrValidation)
	}
	return &dto.ProductCompareResponse{
		Products:   catalog.SummarizeAll(products),
		Comparison: catalog.Compare(products),
	}, nil
}
