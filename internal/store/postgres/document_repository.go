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

	"github.com/complycore/complycore/internal/document"
)

// DocumentRepository implements document.Repository
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document
func (r *DocumentRepository) Create(ctx context.Context, doc *document.Document) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO documents (
			id, tenant_id, code, title, category_id, version, status,
			content, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		doc.ID, doc.TenantID, doc.Code, doc.Title, nullString(doc.CategoryID),
		doc.Version, doc.Status, doc.Content, doc.CreatedBy, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	doc.CreatedAt = now
	doc.UpdatedAt = now

	return nil
}

// GetByID retrieves a document owned by the tenant
func (r *DocumentRepository) GetByID(ctx context.Context, tenantID, docID string) (*document.Document, error) {
	return r.scanOne(r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, code, title, category_id, version, status,
			content, created_by, approved_by, approved_at, created_at, updated_at
		FROM documents
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, docID))
}

// GetByCode retrieves a document by its per-tenant code
func (r *DocumentRepository) GetByCode(ctx context.Context, tenantID, code string) (*document.Document, error) {
	return r.scanOne(r.db.pool.QueryRow(ctx, `
		SELECT id, tenant_id, code, title, category_id, version, status,
			content, created_by, approved_by, approved_at, created_at, updated_at
		FROM documents
		WHERE tenant_id = $1 AND code = $2
	`, tenantID, code))
}

// ListByTenant retrieves all documents owned by the tenant
func (r *DocumentRepository) ListByTenant(ctx context.Context, tenantID string) ([]*document.Document, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, tenant_id, code, title, category_id, version, status,
			content, created_by, approved_by, approved_at, created_at, updated_at
		FROM documents
		WHERE tenant_id = $1
		ORDER BY code
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// Update persists mutable document fields
func (r *DocumentRepository) Update(ctx context.Context, doc *document.Document) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE documents SET
			title = $3,
			category_id = $4,
			version = $5,
			status = $6,
			content = $7,
			approved_by = $8,
			approved_at = $9,
			updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`,
		doc.TenantID, doc.ID, doc.Title, nullString(doc.CategoryID),
		doc.Version, doc.Status, doc.Content,
		nullString(doc.ApprovedBy), doc.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}

	return nil
}

// Delete removes a document
func (r *DocumentRepository) Delete(ctx context.Context, tenantID, docID string) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM documents WHERE tenant_id = $1 AND id = $2
	`, tenantID, docID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}

	return nil
}

func (r *DocumentRepository) scanOne(row pgx.Row) (*document.Document, error) {
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func scanDocument(row pgx.Row) (*document.Document, error) {
	var doc document.Document
	var categoryID, approvedBy sql.NullString
	var approvedAt sql.NullTime

	err := row.Scan(
		&doc.ID, &doc.TenantID, &doc.Code, &doc.Title, &categoryID,
		&doc.Version, &doc.Status, &doc.Content, &doc.CreatedBy,
		&approvedBy, &approvedAt, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.CategoryID = categoryID.String
	doc.ApprovedBy = approvedBy.String
	if approvedAt.Valid {
		doc.ApprovedAt = &approvedAt.Time
	}

	return &doc, nil
}
