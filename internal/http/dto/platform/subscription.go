// Package platform contiene DTOs del panel de plataforma.
package platform

// TenantInfo resume el tenant.
type TenantInfo struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// SubscriptionStatusResponse es el estado efectivo calculado ahora.
type SubscriptionStatusResponse struct {
	Success   bool       `json:"success"`
	Tenant    TenantInfo `json:"tenant"`
	Persisted string     `json:"persisted_status,omitempty"`
	Effective string     `json:"effective_state"`
	Access    string     `json:"access"`
	Policy    string     `json:"no_subscription_policy"`
}
