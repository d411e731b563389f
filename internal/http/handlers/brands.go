package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/http/dto/catalog"
	"github.com/dropDatabas3/storegate/internal/http/errors"
	"github.com/dropDatabas3/storegate/internal/http/helpers"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
)

// BrandsHandler expone el CRUD de marcas. El aislamiento por tenant lo aplica
// el repositorio; acá nunca se filtra ni se setea tenant_id a mano.
type BrandsHandler struct {
	Brands repository.BrandRepository
}

func NewBrandsHandler(brands repository.BrandRepository) *BrandsHandler {
	return &BrandsHandler{Brands: brands}
}

// List maneja GET /brands.
func (h *BrandsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Brands.List(r.Context())
	if err != nil {
		errors.WriteError(w, r, err)
		return
	}
	out := catalog.BrandList{Success: true, Data: make([]catalog.BrandResponse, 0, len(rows))}
	for _, b := range rows {
		out.Data = append(out.Data, catalog.FromBrand(b))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Get maneja GET /brands/{id}.
func (h *BrandsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := brandID(w, r)
	if !ok {
		return
	}
	b, err := h.Brands.Get(r.Context(), id)
	if err != nil {
		errors.WriteError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, catalog.BrandEnvelope{Success: true, Data: catalog.FromBrand(*b)})
}

// Create maneja POST /brands.
func (h *BrandsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req catalog.BrandRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if msg := req.Normalize(); msg != "" {
		errors.WriteError(w, r, errors.ErrInvalidParameter.WithDetail(msg))
		return
	}

	b := &repository.Brand{Name: req.Name}
	if err := h.Brands.Create(r.Context(), b); err != nil {
		errors.WriteError(w, r, err)
		return
	}
	logger.From(r.Context()).Info("brand created", logger.String("brand_id", b.ID.String()))
	helpers.WriteJSON(w, http.StatusCreated, catalog.BrandEnvelope{Success: true, Data: catalog.FromBrand(*b)})
}

// Update maneja PUT /brands/{id}.
func (h *BrandsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := brandID(w, r)
	if !ok {
		return
	}
	var req catalog.BrandRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if msg := req.Normalize(); msg != "" {
		errors.WriteError(w, r, errors.ErrInvalidParameter.WithDetail(msg))
		return
	}

	// Leer primero: el tenant de la fila existente es el que se preserva.
	b, err := h.Brands.Get(r.Context(), id)
	if err != nil {
		errors.WriteError(w, r, err)
		return
	}
	b.Name = req.Name
	if err := h.Brands.Update(r.Context(), b); err != nil {
		errors.WriteError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, catalog.BrandEnvelope{Success: true, Data: catalog.FromBrand(*b)})
}

// Delete maneja DELETE /brands/{id}.
func (h *BrandsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := brandID(w, r)
	if !ok {
		return
	}
	if err := h.Brands.Delete(r.Context(), id); err != nil {
		errors.WriteError(w, r, err)
		return
	}
	logger.From(r.Context()).Info("brand deleted", logger.String("brand_id", id.String()))
	helpers.NoContent(w)
}

func brandID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errors.WriteError(w, r, errors.ErrInvalidParameter.WithDetail("id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
