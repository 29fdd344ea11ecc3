// Copyright 2026 The ComplyCore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/complycore/complycore/internal/nonconformity"
)

// NonConformityRepository implements nonconformity.Repository
type NonConformityRepository struct {
	db *DB
}

// NewNonConformityRepository creates a new non-conformity repository
func NewNonConformityRepository(db *DB) *NonConformityRepository {
	return &NonConformityRepository{db: db}
}

// Create inserts a new non-conformity
func (r *NonConformityRepository) Create(ctx context.Context, nc *nonconformity.NonConformity) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO nonconformities (
			id, tenant_id, title, description, severity, status,
			audit_id, assignee_id, due_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		nc.ID, nc.TenantID, nc.Title, nc.Description, nc.Severity, nc.Status,
		nullString(nc.AuditID), nullString(nc.AssigneeID), nc.DueDate, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert non-conformity: %w", err)
	}

	nc.CreatedAt = now
	nc.UpdatedAt = now

	return nil
}

// GetByID retrieves a non-conformity owned by the tenant
func (r *NonConformityRepository) GetByID(ctx context.Context, tenantID, ncID string) (*nonconformity.NonConformity, error) {
	nc, err := scanNonConformity(r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, title, description, severity, status,
			audit_id, assignee_id, due_date, closed_at, created_at, updated_at
		FROM nonconformities
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, ncID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nonconformity.ErrNotFound
		}
		return nil, err
	}
	return nc, nil
}

// ListByTenant retrieves all non-conformities owned by the tenant
func (r *NonConformityRepository) ListByTenant(ctx context.Context, tenantID string) ([]*nonconformity.NonConformity, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, tenant_id, title, description, severity, status,
			audit_id, assignee_id, due_date, closed_at, created_at, updated_at
		FROM nonconformities
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list non-conformities: %w", err)
	}
	defer rows.Close()

	var ncs []*nonconformity.NonConformity
	for rows.Next() {
		nc, err := scanNonConformity(rows)
		if err != nil {
			return nil, err
		}
		ncs = append(ncs, nc)
	}

	return ncs, rows.Err()
}

// Update persists mutable non-conformity fields
func (r *NonConformityRepository) Update(ctx context.Context, nc *nonconformity.NonConformity) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE nonconformities SET
			title = $3,
			description = $4,
			severity = $5,
			status = $6,
			audit_id = $7,
			assignee_id = $8,
			due_date = $9,
			closed_at = $10,
			updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`,
		nc.TenantID, nc.ID, nc.Title, nc.Description, nc.Severity, nc.Status,
		nullString(nc.AuditID), nullString(nc.AssigneeID), nc.DueDate, nc.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update non-conformity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return nonconformity.ErrNotFound
	}

	return nil
}

func scanNonConformity(row pgx.Row) (*nonconformity.NonConformity, error) {
	var nc nonconformity.NonConformity
	var auditID, assigneeID sql.NullString
	var dueDate, closedAt sql.NullTime

	err := row.Scan(
		&nc.ID, &nc.TenantID, &nc.Title, &nc.Description, &nc.Severity, &nc.Status,
		&auditID, &assigneeID, &dueDate, &closedAt, &nc.CreatedAt, &nc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan non-conformity: %w", err)
	}

	nc.AuditID = auditID.String
	nc.AssigneeID = assigneeID.String
	if dueDate.Valid {
		nc.DueDate = &dueDate.Time
	}
	if closedAt.Valid {
		nc.ClosedAt = &closedAt.Time
	}

	return &nc, nil
}
