package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// OrderService places and tracks orders.
type OrderService interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error)
	Cancel(ctx context.Context, id int64) (*models.Order, error)
}

// CheckoutInput turns the current cart into an order. PaymentMethod is passed
// through to the backend as is.
type CheckoutInput struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

type orderService struct {
	client APIClient
}

func NewOrderService(client APIClient) OrderService {
	return &orderService{client: client}
}

func (s *orderService) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.client.Do(ctx, http.MethodGet, "/orders/", nil, &orders, true); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	if id <= 0 {
		return nil, common.ErrInvalidID
	}

	var o models.Order
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/", id), nil, &o, true); err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &o, nil
}

func (s *orderService) Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	if err := in.ShippingAddress.Validate(); err != nil {
		return nil, err
	}
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	if in.PaymentMethod == "" {
		return nil, common.ErrEmptyArgument
	}

	var o models.Order
	if err := s.client.Do(ctx, http.MethodPost, "/orders/", in, &o, true); err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return &o, nil
}

func (s *orderService) Cancel(ctx context.Context, id int64) (*models.Order, error) {
	if id <= 0 {
		return nil, common.ErrInvalidID
	}

	var o models.Order
	if err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/cancel/", id), nil, &o, true); err != nil {
		return nil, fmt.Errorf("cancel order %d: %w", id, err)
	}
	return &o, nil
}
