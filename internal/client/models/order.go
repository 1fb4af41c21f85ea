package models

import (
	"errors"
	"strings"
	"time"
)

// OrderStatus is the fulfilment state reported by the backend.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Cancellable reports whether the order can still be cancelled by the buyer.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusPaid
}

var ErrIncompleteAddress = errors.New("shipping address is incomplete")

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"address_line_1"`
	Line2      string `json:"address_line_2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Validate checks that all mandatory fields are filled in.
func (a ShippingAddress) Validate() error {
	for _, v := range []string{a.FullName, a.Line1, a.City, a.PostalCode, a.Country} {
		if strings.TrimSpace(v) == "" {
			return ErrIncompleteAddress
		}
	}
	return nil
}

// OrderItem is a purchased product line, priced at order time.
type OrderItem struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

// Order is a placed order.
type Order struct {
	ID              int64           `json:"id"`
	Status          OrderStatus     `json:"status"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      string          `json:"total_price"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
}
