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
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/complycore/complycore/internal/category"
)

// CategoryRepository implements category.Repository
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO categories (id, tenant_id, name, kind, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.TenantID, c.Name, c.Kind, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	c.CreatedAt = now
	c.UpdatedAt = now

	return nil
}

// GetByID retrieves a category owned by the tenant
func (r *CategoryRepository) GetByID(ctx context.Context, tenantID, categoryID string) (*category.Category, error) {
	var c category.Category

	err := r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, kind, created_at, updated_at
		FROM categories
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, categoryID).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Kind, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}

// ListByTenant retrieves all categories owned by the tenant
func (r *CategoryRepository) ListByTenant(ctx context.Context, tenantID string) ([]*category.Category, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, tenant_id, name, kind, created_at, updated_at
		FROM categories
		WHERE tenant_id = $1
		ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Name, &c.Kind, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

// Update persists mutable category fields
func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE categories SET name = $3, kind = $4, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`, c.TenantID, c.ID, c.Name, c.Kind)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return category.ErrNotFound
	}

	return nil
}

// Delete removes a category. Documents that referenced it keep existing
// with a cleared category.
func (r *CategoryRepository) Delete(ctx context.Context, tenantID, categoryID string) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM categories WHERE tenant_id = $1 AND id = $2
	`, tenantID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return category.ErrNotFound
	}

	return nil
}
