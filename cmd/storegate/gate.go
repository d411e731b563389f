package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/storegate/internal/config"
	"github.com/dropDatabas3/storegate/internal/store"
	"github.com/dropDatabas3/storegate/internal/subscription"
)

func newGateCmd(opts *rootOptions) *cobra.Command {
	gate := &cobra.Command{Use: "gate", Short: "Diagnóstico del gate de suscripción"}

	var slug, method string
	check := &cobra.Command{
		Use:   "check",
		Short: "Imprime el estado efectivo de la suscripción de un tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if slug == "" {
				return fmt.Errorf("--slug is required")
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			policy, err := subscription.ParsePolicy(cfg.Tenancy.NoSubscriptionPolicy)
			if err != nil {
				return err
			}

			s, err := store.Open(cmd.Context(), store.Config{
				Driver:          cfg.Storage.Driver,
				DSN:             cfg.Storage.DSN,
				MaxConns:        2,
				ConnMaxLifetime: config.Duration(cfg.Storage.Postgres.ConnMaxLifetime, 0),
			})
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.Tenants().GetBySlug(cmd.Context(), slug)
			if err != nil {
				return fmt.Errorf("tenant %q: %w", slug, err)
			}
			g := subscription.NewGate(subscription.GateConfig{
				Tenants:       s.Tenants(),
				Subscriptions: s.Subscriptions(),
				Policy:        policy,
			})
			d, err := g.Check(cmd.Context(), t.ID, method)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(gateReport{
				Tenant:    t.Slug,
				TenantID:  t.ID.String(),
				Active:    t.Active,
				Persisted: string(d.Evaluation.Persisted),
				Effective: string(d.Evaluation.Effective),
				Access:    d.Evaluation.Access.String(),
				Method:    method,
				Allowed:   d.Allowed,
				Reason:    string(d.Reason),
				Policy:    string(policy),
				At:        time.Now().UTC(),
			})
		},
	}
	check.Flags().StringVar(&slug, "slug", "", "Slug del tenant")
	check.Flags().StringVar(&method, "method", "GET", "Método HTTP a evaluar")

	gate.AddCommand(check)
	return gate
}

type gateReport struct {
	Tenant    string    `json:"tenant"`
	TenantID  string    `json:"tenant_id"`
	Active    bool      `json:"active"`
	Persisted string    `json:"persisted_status,omitempty"`
	Effective string    `json:"effective_state"`
	Access    string    `json:"access"`
	Method    string    `json:"method"`
	Allowed   bool      `json:"allowed"`
	Reason    string    `json:"reason,omitempty"`
	Policy    string    `json:"no_subscription_policy"`
	At        time.Time `json:"evaluated_at"`
}
