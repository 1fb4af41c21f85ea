package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
)

func (a *App) Cart(ctx context.Context) error {
	c, err := a.cartService.Current(ctx)
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}
	renderCart(a.out, c)
	return nil
}

func (a *App) AddToCart(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError("add <productID> [qty]")
	}
	productID, err := common.ParseID(args[0])
	if err != nil {
		return err
	}
	qty := 1
	if len(args) == 2 {
		if qty, err = common.ParseQuantity(args[1]); err != nil {
			return err
		}
	}

	item, err := a.cartService.AddItem(ctx, productID, qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %d x %s to cart (item %d).\n", item.Quantity, productLabel(item.Product.Name, productID), item.ID)
	return nil
}

func (a *App) UpdateCartItem(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("update <itemID> <qty>")
	}
	itemID, err := common.ParseID(args[0])
	if err != nil {
		return err
	}
	qty, err := common.ParseQuantity(args[1])
	if err != nil {
		return err
	}

	item, err := a.cartService.UpdateItem(ctx, itemID, qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Item %d now has quantity %d.\n", item.ID, item.Quantity)
	return nil
}

func (a *App) RemoveCartItem(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("remove <itemID>")
	}
	itemID, err := common.ParseID(args[0])
	if err != nil {
		return err
	}

	if err := a.cartService.RemoveItem(ctx, itemID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Item %d removed.\n", itemID)
	return nil
}

func productLabel(name string, id int64) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("product %d", id)
}
