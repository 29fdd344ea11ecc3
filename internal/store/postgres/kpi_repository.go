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

	"github.com/complycore/complycore/internal/kpi"
)

// KPIRepository implements kpi.Repository
type KPIRepository struct {
	db *DB
}

// NewKPIRepository creates a new KPI repository
func NewKPIRepository(db *DB) *KPIRepository {
	return &KPIRepository{db: db}
}

// Create inserts a new KPI
func (r *KPIRepository) Create(ctx context.Context, k *kpi.KPI) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO kpis (
			id, tenant_id, name, description, unit,
			target_value, current_value, frequency, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		k.ID, k.TenantID, k.Name, k.Description, k.Unit,
		k.TargetValue, k.CurrentValue, k.Frequency, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert kpi: %w", err)
	}

	k.CreatedAt = now
	k.UpdatedAt = now

	return nil
}

// GetByID retrieves a KPI owned by the tenant
func (r *KPIRepository) GetByID(ctx context.Context, tenantID, kpiID string) (*kpi.KPI, error) {
	k, err := scanKPI(r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, description, unit,
			target_value, current_value, frequency, measured_at,
			created_at, updated_at
		FROM kpis
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, kpiID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kpi.ErrNotFound
		}
		return nil, err
	}
	return k, nil
}

// ListByTenant retrieves all KPIs owned by the tenant
func (r *KPIRepository) ListByTenant(ctx context.Context, tenantID string) ([]*kpi.KPI, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, tenant_id, name, description, unit,
			target_value, current_value, frequency, measured_at,
			created_at, updated_at
		FROM kpis
		WHERE tenant_id = $1
		ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	defer rows.Close()

	var kpis []*kpi.KPI
	for rows.Next() {
		k, err := scanKPI(rows)
		if err != nil {
			return nil, err
		}
		kpis = append(kpis, k)
	}

	return kpis, rows.Err()
}

// Update persists mutable KPI fields
func (r *KPIRepository) Update(ctx context.Context, k *kpi.KPI) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE kpis SET
			name = $3,
			description = $4,
			unit = $5,
			target_value = $6,
			current_value = $7,
			frequency = $8,
			measured_at = $9,
			updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`,
		k.TenantID, k.ID, k.Name, k.Description, k.Unit,
		k.TargetValue, k.CurrentValue, k.Frequency, k.MeasuredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update kpi: %w", err)
	}

	if result.RowsAffected() == 0 {
		return kpi.ErrNotFound
	}

	return nil
}

// Delete removes a KPI
func (r *KPIRepository) Delete(ctx context.Context, tenantID, kpiID string) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM kpis WHERE tenant_id = $1 AND id = $2
	`, tenantID, kpiID)
	if err != nil {
		return fmt.Errorf("failed to delete kpi: %w", err)
	}

	if result.RowsAffected() == 0 {
		return kpi.ErrNotFound
	}

	return nil
}

func scanKPI(row pgx.Row) (*kpi.KPI, error) {
	var k kpi.KPI
	var measuredAt sql.NullTime

	err := row.Scan(
		&k.ID, &k.TenantID, &k.Name, &k.Description, &k.Unit,
		&k.TargetValue, &k.CurrentValue, &k.Frequency, &measuredAt,
		&k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan kpi: %w", err)
	}

	if measuredAt.Valid {
		k.MeasuredAt = &measuredAt.Time
	}

	return &k, nil
}
