package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/workhive/workhive-api/internal/workspace"
)

// WorkspacePostgresStore is a PostgreSQL implementation of
// workspace.Repository.
type WorkspacePostgresStore struct {
	pool *pgxpool.Pool
}

// NewWorkspacePostgresStore creates a new PostgreSQL-backed workspace store.
func NewWorkspacePostgresStore(pool *pgxpool.Pool) *WorkspacePostgresStore {
	return &WorkspacePostgresStore{pool: pool}
}

func (p *WorkspacePostgresStore) Create(ctx context.Context, ws *workspace.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, plan, internal, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query, ws.ID, ws.Name, ws.Plan, ws.Internal, ws.CreatedAt)

	return err
}

func (p *WorkspacePostgresStore) Get(ctx context.Context, id string) (*workspace.Workspace, error) {
	query := `
		SELECT id, name, plan, internal, created_at
		FROM workspaces
		WHERE id = $1
	`

	var ws workspace.Workspace

	err := p.pool.QueryRow(ctx, query, id).Scan(
		&ws.ID,
		&ws.Name,
		&ws.Plan,
		&ws.Internal,
		&ws.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workspace.ErrNotFound
		}

		return nil, err
	}

	return &ws, nil
}

func (p *WorkspacePostgresStore) Update(ctx context.Context, ws *workspace.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $2, plan = $3, internal = $4
		WHERE id = $1
	`

	tag, err := p.pool.Exec(ctx, query, ws.ID, ws.Name, ws.Plan, ws.Internal)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return workspace.ErrNotFound
	}

	return nil
}

func (p *WorkspacePostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return workspace.ErrNotFound
	}

	return nil
}

func (p *WorkspacePostgresStore) SetInternal(ctx context.Context, id string, internal bool) error {
	tag, err := p.pool.Exec(ctx, `UPDATE workspaces SET internal = $2 WHERE id = $1`, id, internal)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return workspace.ErrNotFound
	}

	return nil
}

// Compile-time check.
var _ workspace.Repository = (*WorkspacePostgresStore)(nil)
