package handlers

import (
	"net/http"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/http/dto/storefront"
	"github.com/dropDatabas3/storegate/internal/http/errors"
	"github.com/dropDatabas3/storegate/internal/http/helpers"
	"github.com/dropDatabas3/storegate/internal/tenancy"
)

// StorefrontHandler sirve la info pública de la tienda resuelta por header.
type StorefrontHandler struct {
	Tenants repository.TenantRepository
}

func NewStorefrontHandler(tenants repository.TenantRepository) *StorefrontHandler {
	return &StorefrontHandler{Tenants: tenants}
}

// Store maneja GET /public/store. Slug desconocido => 404.
func (h *StorefrontHandler) Store(w http.ResponseWriter, r *http.Request) {
	id, ok := tenancy.FromContext(r.Context()).TenantID()
	if !ok {
		errors.WriteError(w, r, errors.ErrTenantNotFound)
		return
	}
	t, err := h.Tenants.GetByID(r.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			errors.WriteError(w, r, errors.ErrTenantNotFound)
			return
		}
		errors.WriteError(w, r, errors.ErrServiceUnavailable.WithCause(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, storefront.StoreResponse{
		Success: true,
		Slug:    t.Slug,
		Name:    t.Name,
		Open:    t.Active,
	})
}
