package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/storegate/internal/domain/repository"
)

// SubscriptionRepo lee la tabla subscriptions.
type SubscriptionRepo struct{ q querier }

// Latest usa el índice (tenant_id, created_at DESC): lectura top-1 ordenada.
// No toma locks: una renovación concurrente puede verse antes o después de su commit.
func (r *SubscriptionRepo) Latest(ctx context.Context, tenantID uuid.UUID) (*repository.Subscription, error) {
	const q = `
		SELECT id, tenant_id, status, trial_end, start_date, end_date, grace_end, created_at
		FROM subscriptions
		WHERE tenant_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var (
		s      repository.Subscription
		status string
	)
	err := r.q.QueryRow(ctx, q, tenantID).Scan(
		&s.ID, &s.TenantID, &status, &s.TrialEnd, &s.StartDate, &s.EndDate, &s.GraceEnd, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("pg: latest subscription: %w", err)
	}
	s.Status = repository.ParseSubscriptionStatus(status)
	return &s, nil
}
