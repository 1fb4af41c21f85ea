package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/common"
)

const defaultPaymentMethod = "card"

// Checkout shows the cart, collects a shipping address and places the order.
func (a *App) Checkout(ctx context.Context) error {
	c, err := a.cartService.Current(ctx)
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}
	renderCart(a.out, c)

	addr, err := a.readAddress()
	if err != nil {
		return err
	}
	if err := addr.Validate(); err != nil {
		return err
	}

	payment, err := getSimpleText(a.reader, "Payment method (card, cash) [card]", a.out)
	if err != nil {
		return err
	}
	if payment == "" {
		payment = defaultPaymentMethod
	}

	ok, err := getConfirmation(a.reader, fmt.Sprintf("Place order for %s?", c.TotalPrice), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Checkout cancelled.")
		return nil
	}

	o, err := a.orderService.Checkout(ctx, services.CheckoutInput{ShippingAddress: addr, PaymentMethod: payment})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order #%d placed, total %s, status %s.\n", o.ID, o.TotalPrice, o.Status)
	return nil
}

func (a *App) readAddress() (models.ShippingAddress, error) {
	var addr models.ShippingAddress
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &addr.FullName},
		{"Address line 1", &addr.Line1},
		{"Address line 2 (optional)", &addr.Line2},
		{"City", &addr.City},
		{"Postal code", &addr.PostalCode},
		{"Country", &addr.Country},
		{"Phone (optional)", &addr.Phone},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return addr, err
		}
		*f.dst = v
	}
	return addr, nil
}

func (a *App) Orders(ctx context.Context) error {
	orders, err := a.orderService.List(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")
		return nil
	}
	renderOrders(a.out, orders)
	return nil
}

func (a *App) Order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("order <id>")
	}
	id, err := common.ParseID(args[0])
	if err != nil {
		return err
	}

	o, err := a.orderService.Get(ctx, id)
	if err != nil {
		return err
	}
	renderOrder(a.out, o)
	return nil
}

func (a *App) CancelOrder(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("cancel <id>")
	}
	id, err := common.ParseID(args[0])
	if err != nil {
		return err
	}

	ok, err := getConfirmation(a.reader, fmt.Sprintf("Cancel order #%d?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	o, err := a.orderService.Cancel(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order #%d is now %s.\n", o.ID, o.Status)
	return nil
}
