// Package models defines the storefront data exchanged with the backend API:
// users, catalog products, carts and orders. Money values are kept as the
// decimal strings the backend sends.
package models
