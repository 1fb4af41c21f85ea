package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func stockLabel(p models.Product) string {
	if !p.InStock() {
		return "out of stock"
	}
	return fmt.Sprintf("%d", p.Stock)
}

func renderProducts(w io.Writer, products []models.Product) {
	tw := newTable(w, "ID", "NAME", "PRICE", "STOCK", "CATEGORY")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price, stockLabel(p), p.CategoryName)
	}
	_ = tw.Flush()
}

func renderProduct(w io.Writer, p *models.Product) {
	fmt.Fprintf(w, "#%d %s\n", p.ID, p.Name)
	fmt.Fprintf(w, "Price: %s\n", p.Price)
	fmt.Fprintf(w, "Stock: %s\n", stockLabel(*p))
	if p.CategoryName != "" {
		fmt.Fprintf(w, "Category: %s\n", p.CategoryName)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}

func renderCategories(w io.Writer, cats []models.Category) {
	tw := newTable(w, "ID", "NAME", "SLUG")
	for _, c := range cats {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.Slug)
	}
	_ = tw.Flush()
}

func renderCart(w io.Writer, c *models.Cart) {
	tw := newTable(w, "ITEM", "PRODUCT", "QTY", "PRICE", "SUBTOTAL")
	for _, it := range c.Items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", it.ID, it.Product.Name, it.Quantity, it.Product.Price, it.Subtotal)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "Total: %s (%d items)\n", c.TotalPrice, c.TotalItems)
}

func renderOrders(w io.Writer, orders []models.Order) {
	tw := newTable(w, "ID", "DATE", "STATUS", "ITEMS", "TOTAL")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", o.ID, formatDate(o.CreatedAt), o.Status, len(o.Items), o.TotalPrice)
	}
	_ = tw.Flush()
}

func renderOrder(w io.Writer, o *models.Order) {
	fmt.Fprintf(w, "Order #%d, %s, placed %s\n", o.ID, o.Status, formatDate(o.CreatedAt))

	tw := newTable(w, "PRODUCT", "QTY", "PRICE")
	for _, it := range o.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", it.ProductName, it.Quantity, it.Price)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "Total: %s, paid by %s\n", o.TotalPrice, o.PaymentMethod)
	a := o.ShippingAddress
	fmt.Fprintf(w, "Ship to: %s, %s, %s %s, %s\n", a.FullName, a.Line1, a.PostalCode, a.City, a.Country)
	if o.Status.Cancellable() {
		fmt.Fprintf(w, "This order can still be cancelled: cancel %d\n", o.ID)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateOnly)
}
