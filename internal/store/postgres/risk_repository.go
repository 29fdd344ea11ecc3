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

	"github.com/complycore/complycore/internal/risk"
)

// RiskRepository implements risk.Repository
type RiskRepository struct {
	db *DB
}

// NewRiskRepository creates a new risk repository
func NewRiskRepository(db *DB) *RiskRepository {
	return &RiskRepository{db: db}
}

// Create inserts a new risk
func (r *RiskRepository) Create(ctx context.Context, rk *risk.Risk) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO risks (
			id, tenant_id, title, description, likelihood, impact,
			score, level, mitigation_plan, status, owner_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		rk.ID, rk.TenantID, rk.Title, rk.Description, rk.Likelihood, rk.Impact,
		rk.Score, rk.Level, rk.MitigationPlan, rk.Status, nullString(rk.OwnerID),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert risk: %w", err)
	}

	rk.CreatedAt = now
	rk.UpdatedAt = now

	return nil
}

// GetByID retrieves a risk owned by the tenant
func (r *RiskRepository) GetByID(ctx context.Context, tenantID, riskID string) (*risk.Risk, error) {
	rk, err := scanRisk(r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, title, description, likelihood, impact,
			score, level, mitigation_plan, status, owner_id,
			created_at, updated_at
		FROM risks
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, riskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, risk.ErrNotFound
		}
		return nil, err
	}
	return rk, nil
}

// ListByTenant retrieves all risks owned by the tenant
func (r *RiskRepository) ListByTenant(ctx context.Context, tenantID string) ([]*risk.Risk, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, tenant_id, title, description, likelihood, impact,
			score, level, mitigation_plan, status, owner_id,
			created_at, updated_at
		FROM risks
		WHERE tenant_id = $1
		ORDER BY score DESC, created_at
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list risks: %w", err)
	}
	defer rows.Close()

	var risks []*risk.Risk
	for rows.Next() {
		rk, err := scanRisk(rows)
		if err != nil {
			return nil, err
		}
		risks = append(risks, rk)
	}

	return risks, rows.Err()
}

// Update persists mutable risk fields
func (r *RiskRepository) Update(ctx context.Context, rk *risk.Risk) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE risks SET
			title = $3,
			description = $4,
			likelihood = $5,
			impact = $6,
			score = $7,
			level = $8,
			mitigation_plan = $9,
			status = $10,
			owner_id = $11,
			updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`,
		rk.TenantID, rk.ID, rk.Title, rk.Description, rk.Likelihood, rk.Impact,
		rk.Score, rk.Level, rk.MitigationPlan, rk.Status, nullString(rk.OwnerID),
	)
	if err != nil {
		return fmt.Errorf("failed to update risk: %w", err)
	}

	if result.RowsAffected() == 0 {
		return risk.ErrNotFound
	}

	return nil
}

// Delete removes a risk
func (r *RiskRepository) Delete(ctx context.Context, tenantID, riskID string) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM risks WHERE tenant_id = $1 AND id = $2
	`, tenantID, riskID)
	if err != nil {
		return fmt.Errorf("failed to delete risk: %w", err)
	}

	if result.RowsAffected() == 0 {
		return risk.ErrNotFound
	}

	return nil
}

func scanRisk(row pgx.Row) (*risk.Risk, error) {
	var rk risk.Risk
	var ownerID sql.NullString

	err := row.Scan(
		&rk.ID, &rk.TenantID, &rk.Title, &rk.Description, &rk.Likelihood, &rk.Impact,
		&rk.Score, &rk.Level, &rk.MitigationPlan, &rk.Status, &ownerID,
		&rk.CreatedAt, &rk.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan risk: %w", err)
	}

	rk.OwnerID = ownerID.String

	return &rk, nil
}
