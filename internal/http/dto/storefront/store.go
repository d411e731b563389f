// Package storefront contiene DTOs del storefront público.
package storefront

// StoreResponse es la info pública de la tienda resuelta.
type StoreResponse struct {
	Success bool   `json:"success"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Open    bool   `json:"open"`
}
