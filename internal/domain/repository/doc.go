// Package repository define las entidades y contratos de almacenamiento del núcleo de tenancy.
//
// Estas interfaces son independientes del almacenamiento subyacente
// (PostgreSQL o memoria). Las implementaciones concretas viven en internal/store/.
//
// Arquitectura:
//
//	┌─────────────────────────────────────────────────────┐
//	│        Middlewares (gates) / Handlers               │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌─────────────────────────────────────────────────────┐
//	│        domain/repository (interfaces)               │
//	│  TenantRepository, SubscriptionRepository, Brands   │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	              ┌─────────┴─────────┐
//	              ▼                   ▼
//	       ┌─────────────┐     ┌─────────────┐
//	       │  store/pg   │     │ store/memory│
//	       └─────────────┘     └─────────────┘
//
// Tenants y suscripciones son de solo lectura para este núcleo: los escribe el
// flujo externo de onboarding/billing.
package repository
