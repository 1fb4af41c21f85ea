package models

// CartItem is a product line in the cart.
type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal string  `json:"subtotal"`
}

// Cart is the current user's shopping cart.
type Cart struct {
	ID         int64      `json:"id"`
	Items      []CartItem `json:"items"`
	TotalPrice string     `json:"total_price"`
	TotalItems int        `json:"total_items"`
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
