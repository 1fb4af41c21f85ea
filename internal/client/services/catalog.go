package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// CatalogService browses the public catalog. None of its calls carry a
// credential.
type CatalogService interface {
	ListProducts(ctx context.Context, q ProductQuery) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// ProductQuery filters a product listing. Zero values are omitted.
type ProductQuery struct {
	Search   string
	Category string
	Ordering string
	Page     int
}

// Encode renders the query string, without the leading '?'.
func (q ProductQuery) Encode() string {
	v := url.Values{}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Ordering != "" {
		v.Set("ordering", q.Ordering)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v.Encode()
}

type catalogService struct {
	client APIClient
}

func NewCatalogService(client APIClient) CatalogService {
	return &catalogService{client: client}
}

func (s *catalogService) ListProducts(ctx context.Context, q ProductQuery) (*models.ProductPage, error) {
	endpoint := "/products/"
	if qs := q.Encode(); qs != "" {
		endpoint += "?" + qs
	}

	var page models.ProductPage
	if err := s.client.Do(ctx, http.MethodGet, endpoint, nil, &page, false); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &page, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, common.ErrInvalidID
	}

	var p models.Product
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/", id), nil, &p, false); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.client.Do(ctx, http.MethodGet, "/categories/", nil, &cats, false); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}
