package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
	"github.com/dropDatabas3/storegate/internal/http/dto/catalog"
	"github.com/dropDatabas3/storegate/internal/http/dto/platform"
	"github.com/dropDatabas3/storegate/internal/store/memory"
	"github.com/dropDatabas3/storegate/internal/subscription"
	"github.com/dropDatabas3/storegate/internal/tenancy"
)

// withTenant simula lo que deja la cadena de gates en el contexto.
func withTenant(id uuid.UUID, slug string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc := tenancy.New()
			if id != uuid.Nil {
				_ = tc.Resolve(id, slug)
			}
			next.ServeHTTP(w, r.WithContext(tenancy.WithContext(r.Context(), tc)))
		})
	}
}

func brandRouter(s *memory.Store, tenantID uuid.UUID) http.Handler {
	h := NewBrandsHandler(s.Brands())
	r := chi.NewRouter()
	r.Use(withTenant(tenantID, "t"))
	r.Get("/brands", h.List)
	r.Post("/brands", h.Create)
	r.Get("/brands/{id}", h.Get)
	r.Put("/brands/{id}", h.Update)
	r.Delete("/brands/{id}", h.Delete)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Code
}

func TestBrands_CRUDWithinTenant(t *testing.T) {
	s := memory.New()
	a := uuid.New()
	api := brandRouter(s, a)

	rec := do(api, http.MethodPost, "/brands", `{"name":"  Acme Cola "}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created catalog.BrandEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Acme Cola", created.Data.Name)

	rec = do(api, http.MethodGet, "/brands/"+created.Data.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(api, http.MethodPut, "/brands/"+created.Data.ID, `{"name":"Acme Zero"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(api, http.MethodGet, "/brands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list catalog.BrandList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Acme Zero", list.Data[0].Name)

	rec = do(api, http.MethodDelete, "/brands/"+created.Data.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(api, http.MethodGet, "/brands/"+created.Data.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBrands_OtherTenantCannotSeeRows(t *testing.T) {
	s := memory.New()
	a, b := uuid.New(), uuid.New()

	rec := do(brandRouter(s, a), http.MethodPost, "/brands", `{"name":"Only A"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created catalog.BrandEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	other := brandRouter(s, b)
	rec = do(other, http.MethodGet, "/brands", "")
	var list catalog.BrandList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Data)

	for _, m := range []string{http.MethodGet, http.MethodDelete} {
		rec = do(other, m, "/brands/"+created.Data.ID, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, m)
	}
	rec = do(other, http.MethodPut, "/brands/"+created.Data.ID, `{"name":"hijack"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBrands_Validation(t *testing.T) {
	api := brandRouter(memory.New(), uuid.New())

	rec := do(api, http.MethodPost, "/brands", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PARAMETER", errorCode(t, rec))

	rec = do(api, http.MethodPost, "/brands", `{"name":"x","tenant_id":"evil"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/brands", strings.NewReader(`{"name":"x"}`))
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rec = do(api, http.MethodGet, "/brands/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBrands_CreateUnresolvedContextFails(t *testing.T) {
	api := brandRouter(memory.New(), uuid.Nil)

	rec := do(api, http.MethodPost, "/brands", `{"name":"orphan"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "TENANT_NOT_FOUND", errorCode(t, rec))
}

func seedTenant(t *testing.T, s *memory.Store, slug string, active bool) repository.Tenant {
	t.Helper()
	tn, err := s.PutTenant(repository.Tenant{Slug: slug, Name: strings.ToUpper(slug), Active: active})
	require.NoError(t, err)
	return tn
}

func TestStorefront_Store(t *testing.T) {
	s := memory.New()
	tn := seedTenant(t, s, "acme", true)
	h := NewStorefrontHandler(s.Tenants())

	rec := httptest.NewRecorder()
	withTenant(tn.ID, "acme")(http.HandlerFunc(h.Store)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public/store", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"acme"`)

	rec = httptest.NewRecorder()
	withTenant(uuid.Nil, "")(http.HandlerFunc(h.Store)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public/store", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlatform_SubscriptionStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := memory.New()
	tn := seedTenant(t, s, "acme", true)
	end, grace := now.Add(-24*time.Hour), now.Add(72*time.Hour)
	_, err := s.AddSubscription(repository.Subscription{
		TenantID: tn.ID, Status: repository.StatusActive, EndDate: &end, GraceEnd: &grace,
	})
	require.NoError(t, err)

	gate := subscription.NewGate(subscription.GateConfig{
		Tenants: s.Tenants(), Subscriptions: s.Subscriptions(),
		Now: func() time.Time { return now },
	})
	h := NewPlatformHandler(s.Tenants(), gate)
	r := chi.NewRouter()
	r.Get("/platform/tenants/{slug}/subscription", h.SubscriptionStatus)

	rec := do(r, http.MethodGet, "/platform/tenants/acme/subscription", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out platform.SubscriptionStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "active", out.Persisted)
	assert.Equal(t, string(subscription.StateGrace), out.Effective)
	assert.Equal(t, subscription.AccessReadOnly.String(), out.Access)
	assert.Equal(t, "allow", out.Policy)

	rec = do(r, http.MethodGet, "/platform/tenants/ghost/subscription", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealth_Readyz(t *testing.T) {
	h := &HealthHandler{Store: pinger{}, Version: "test"}
	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cache":{"status":"disabled"}`)

	h.Cache = pinger{err: errors.New("redis down")}
	rec = httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis down")

	rec = httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
