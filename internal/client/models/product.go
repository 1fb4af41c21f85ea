package models

// Category groups products in the catalog.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a catalog item.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	Stock        int    `json:"stock"`
	Category     int64  `json:"category"`
	CategoryName string `json:"category_name,omitempty"`
	Image        string `json:"image,omitempty"`
	IsActive     bool   `json:"is_active"`
}

// InStock reports whether at least one unit can be ordered.
func (p Product) InStock() bool {
	return p.IsActive && p.Stock > 0
}

// ProductPage is one page of a paginated product listing.
type ProductPage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Product `json:"results"`
}

// HasNext reports whether another page follows.
func (p *ProductPage) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}
