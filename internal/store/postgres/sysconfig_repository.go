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

	"github.com/jackc/pgx/v5"

	"github.com/complycore/complycore/internal/sysconfig"
)

// SysConfigRepository implements sysconfig.Repository
type SysConfigRepository struct {
	db *DB
}

// NewSysConfigRepository creates a new system config repository
func NewSysConfigRepository(db *DB) *SysConfigRepository {
	return &SysConfigRepository{db: db}
}

// Get retrieves one entry by key
func (r *SysConfigRepository) Get(ctx context.Context, key string) (*sysconfig.Entry, error) {
	var entry sysconfig.Entry

	err := r.db.pool.QueryRow(ctx, `
		SELECT key, value, category, is_secret, updated_at
		FROM system_config
		WHERE key = $1
	`, key).Scan(
		&entry.Key, &entry.Value, &entry.Category, &entry.IsSecret, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sysconfig.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get config entry: %w", err)
	}

	return &entry, nil
}

// List retrieves all entries
func (r *SysConfigRepository) List(ctx context.Context) ([]*sysconfig.Entry, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT key, value, category, is_secret, updated_at
		FROM system_config
		ORDER BY category, key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list config entries: %w", err)
	}
	defer rows.Close()

	var entries []*sysconfig.Entry
	for rows.Next() {
		var entry sysconfig.Entry
		if err := rows.Scan(
			&entry.Key, &entry.Value, &entry.Category, &entry.IsSecret, &entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan config entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Upsert inserts or replaces an entry
func (r *SysConfigRepository) Upsert(ctx context.Context, entry *sysconfig.Entry) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO system_config (key, value, category, is_secret, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			category = EXCLUDED.category,
			is_secret = EXCLUDED.is_secret,
			updated_at = NOW()
	`, entry.Key, entry.Value, entry.Category, entry.IsSecret)
	if err != nil {
		return fmt.Errorf("failed to upsert config entry: %w", err)
	}
	return nil
}

// Delete removes an entry
func (r *SysConfigRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.pool.Exec(ctx, `DELETE FROM system_config WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete config entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return sysconfig.ErrNotFound
	}

	return nil
}
