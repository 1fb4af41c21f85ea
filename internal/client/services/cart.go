package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// CartService manages the signed-in user's cart.
type CartService interface {
	Current(ctx context.Context) (*models.Cart, error)
	AddItem(ctx context.Context, productID int64, quantity int) (*models.CartItem, error)
	UpdateItem(ctx context.Context, itemID int64, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, itemID int64) error
}

type cartService struct {
	client APIClient
}

func NewCartService(client APIClient) CartService {
	return &cartService{client: client}
}

func (s *cartService) Current(ctx context.Context) (*models.Cart, error) {
	var c models.Cart
	if err := s.client.Do(ctx, http.MethodGet, "/cart/current/", nil, &c, true); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

func (s *cartService) AddItem(ctx context.Context, productID int64, quantity int) (*models.CartItem, error) {
	if productID <= 0 {
		return nil, common.ErrInvalidID
	}
	if quantity < 1 {
		return nil, common.ErrInvalidQuantity
	}

	body := map[string]any{"product_id": productID, "quantity": quantity}

	var item models.CartItem
	if err := s.client.Do(ctx, http.MethodPost, "/cart/items/", body, &item, true); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return &item, nil
}

func (s *cartService) UpdateItem(ctx context.Context, itemID int64, quantity int) (*models.CartItem, error) {
	if itemID <= 0 {
		return nil, common.ErrInvalidID
	}
	if quantity < 1 {
		return nil, common.ErrInvalidQuantity
	}

	var item models.CartItem
	endpoint := fmt.Sprintf("/cart/items/%d/", itemID)
	if err := s.client.Do(ctx, http.MethodPatch, endpoint, map[string]int{"quantity": quantity}, &item, true); err != nil {
		return nil, fmt.Errorf("update cart item %d: %w", itemID, err)
	}
	return &item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return common.ErrInvalidID
	}
	if err := s.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/cart/items/%d/", itemID), nil, nil, true); err != nil {
		return fmt.Errorf("remove cart item %d: %w", itemID, err)
	}
	return nil
}
