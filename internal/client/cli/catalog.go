package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// Products lists the catalog. Arguments are joined into a search phrase; a
// trailing "page=N" selects a page.
func (a *App) Products(ctx context.Context, args []string) error {
	q := services.ProductQuery{}
	var words []string
	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, "page="); ok {
			page, err := common.ParseID(v)
			if err != nil {
				return usageError("products [search words] [page=N]")
			}
			q.Page = int(page)
			continue
		}
		if v, ok := strings.CutPrefix(arg, "category="); ok {
			q.Category = v
			continue
		}
		words = append(words, arg)
	}
	q.Search = strings.Join(words, " ")

	page, err := a.catalogService.ListProducts(ctx, q)
	if err != nil {
		return err
	}

	if len(page.Results) == 0 {
		fmt.Fprintln(a.out, "No products found.")
		return nil
	}
	renderProducts(a.out, page.Results)
	fmt.Fprintf(a.out, "%d of %d products", len(page.Results), page.Count)
	if page.HasNext() {
		next := q.Page + 1
		if next < 2 {
			next = 2
		}
		fmt.Fprintf(a.out, " (more: page=%d)", next)
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("product <id>")
	}
	id, err := common.ParseID(args[0])
	if err != nil {
		return err
	}

	p, err := a.catalogService.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	renderProduct(a.out, p)
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	cats, err := a.catalogService.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		fmt.Fprintln(a.out, "No categories.")
		return nil
	}
	renderCategories(a.out, cats)
	return nil
}
