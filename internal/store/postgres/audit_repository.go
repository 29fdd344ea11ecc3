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

	"github.com/complycore/complycore/internal/audit"
)

// AuditRepository implements audit.Repository
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateWithChecklist inserts an audit and its checklist rows as one
// transaction. A failure on any checklist insert rolls back the audit row.
func (r *AuditRepository) CreateWithChecklist(ctx context.Context, a *audit.Audit, items []*audit.ChecklistItem) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	_, err = tx.Exec(ctx, `
		INSERT INTO audits (
			id, tenant_id, title, type, scope, status,
			lead_auditor_id, scheduled_for, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		a.ID, a.TenantID, a.Title, a.Type, a.Scope, a.Status,
		nullString(a.LeadAuditorID), a.ScheduledFor, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit: %w", err)
	}

	for _, item := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO checklist_items (id, audit_id, requirement, result, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, item.AuditID, item.Requirement, item.Result, item.Notes, now, now)
		if err != nil {
			return fmt.Errorf("failed to insert checklist item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit audit creation: %w", err)
	}

	a.CreatedAt = now
	a.UpdatedAt = now
	for _, item := range items {
		item.CreatedAt = now
		item.UpdatedAt = now
	}

	return nil
}

// GetByID retrieves an audit owned by the tenant
func (r *AuditRepository) GetByID(ctx context.Context, tenantID, auditID string) (*audit.Audit, error) {
	return r.scanOne(r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, title, type, scope, status,
			lead_auditor_id, scheduled_for, started_at, completed_at,
			created_at, updated_at
		FROM audits
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, auditID))
}

// ListByTenant retrieves all audits owned by the tenant
func (r *AuditRepository) ListByTenant(ctx context.Context, tenantID string) ([]*audit.Audit, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, tenant_id, title, type, scope, status,
			lead_auditor_id, scheduled_for, started_at, completed_at,
			created_at, updated_at
		FROM audits
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	defer rows.Close()

	var audits []*audit.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, a)
	}

	return audits, rows.Err()
}

// Update persists mutable audit fields
func (r *AuditRepository) Update(ctx context.Context, a *audit.Audit) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE audits SET
			title = $3,
			type = $4,
			scope = $5,
			status = $6,
			lead_auditor_id = $7,
			scheduled_for = $8,
			started_at = $9,
			completed_at = $10,
			updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`,
		a.TenantID, a.ID, a.Title, a.Type, a.Scope, a.Status,
		nullString(a.LeadAuditorID), a.ScheduledFor, a.StartedAt, a.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update audit: %w", err)
	}

	if result.RowsAffected() == 0 {
		return audit.ErrAuditNotFound
	}

	return nil
}

// ListChecklist retrieves the checklist of a tenant-owned audit. The join
// keeps the tenant scope on the query itself.
func (r *AuditRepository) ListChecklist(ctx context.Context, tenantID, auditID string) ([]*audit.ChecklistItem, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT c.id, c.audit_id, c.requirement, c.result, c.notes, c.created_at, c.updated_at
		FROM checklist_items c
		JOIN audits a ON a.id = c.audit_id
		WHERE a.tenant_id = $1 AND c.audit_id = $2
		ORDER BY c.created_at
	`, tenantID, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer rows.Close()

	var items []*audit.ChecklistItem
	for rows.Next() {
		var item audit.ChecklistItem
		if err := rows.Scan(
			&item.ID, &item.AuditID, &item.Requirement, &item.Result, &item.Notes,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// UpdateChecklistItem records a result for one checklist item
func (r *AuditRepository) UpdateChecklistItem(ctx context.Context, tenantID, auditID string, item *audit.ChecklistItem) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE checklist_items c SET
			result = $4,
			notes = $5,
			updated_at = NOW()
		FROM audits a
		WHERE c.id = $3 AND c.audit_id = $2
			AND a.id = c.audit_id AND a.tenant_id = $1
	`, tenantID, auditID, item.ID, item.Result, item.Notes)
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return audit.ErrChecklistNotFound
	}

	return nil
}

func (r *AuditRepository) scanOne(row pgx.Row) (*audit.Audit, error) {
	a, err := scanAudit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, audit.ErrAuditNotFound
		}
		return nil, err
	}
	return a, nil
}

func scanAudit(row pgx.Row) (*audit.Audit, error) {
	var a audit.Audit
	var leadAuditor sql.NullString
	var scheduledFor, startedAt, completedAt sql.NullTime

	err := row.Scan(
		&a.ID, &a.TenantID, &a.Title, &a.Type, &a.Scope, &a.Status,
		&leadAuditor, &scheduledFor, &startedAt, &completedAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan audit: %w", err)
	}

	a.LeadAuditorID = leadAuditor.String
	if scheduledFor.Valid {
		a.ScheduledFor = &scheduledFor.Time
	}
	if startedAt.Valid {
		a.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}

	return &a, nil
}

// nullString maps the empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
