// Package catalog contiene DTOs del catálogo (marcas).
package catalog

import (
	"strings"
	"time"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

// BrandRequest es el body de POST/PUT /brands. El tenant nunca viene del
// cliente: lo estampa el storage con el tenant del request.
type BrandRequest struct {
	Name string `json:"name"`
}

// Normalize recorta espacios y retorna un mensaje de validación o "".
func (r *BrandRequest) Normalize() string {
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.Name == "":
		return "name is required"
	case len(r.Name) > 120:
		return "name must be at most 120 characters"
	}
	return ""
}

// BrandResponse es una marca serializada.
type BrandResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromBrand(b repository.Brand) BrandResponse {
	return BrandResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BrandList envuelve el listado.
type BrandList struct {
	Success bool            `json:"success"`
	Data    []BrandResponse `json:"data"`
}

// BrandEnvelope envuelve una marca.
type BrandEnvelope struct {
	Success bool          `json:"success"`
	Data    BrandResponse `json:"data"`
}
