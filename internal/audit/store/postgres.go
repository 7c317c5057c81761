package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/workhive/workhive-api/internal/audit"
)

// Postgres persists audit events to PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL-backed audit store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) SaveLimitExceeded(ctx context.Context, event *audit.LimitExceededEvent) error {
	query := `
		INSERT INTO rate_limit_events
			(policy, subject, key, "limit", count, reset_at, path, method, client_ip, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Policy,
		event.Subject,
		event.Key,
		event.Limit,
		event.Count,
		event.ResetAt,
		event.Path,
		event.Method,
		event.ClientIP,
		event.OccurredAt,
	)

	return err
}

// Compile-time check.
var _ audit.Store = (*Postgres)(nil)
