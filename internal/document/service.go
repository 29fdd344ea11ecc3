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

package document

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/id"
)

// Service provides document business logic
type Service struct {
	repo Repository
}

// NewService creates a new document service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted when creating a document.
type CreateInput struct {
	Code       string
	Title      string
	CategoryID string
	Content    string
}

// Create creates a document in draft state. Duplicate codes inside a tenant
// are a conflict.
func (s *Service) Create(ctx context.Context, tenantID, createdBy string, in CreateInput) (*Document, error) {
	if strings.TrimSpace(in.Code) == "" {
		return nil, apperr.Validation("code is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	if _, err := s.repo.GetByCode(ctx, tenantID, in.Code); err == nil {
		return nil, apperr.Conflict("document code already in use")
	} else if !errors.Is(err, ErrDocumentNotFound) {
		return nil, apperr.Internal(err)
	}

	now := time.Now()
	doc := &Document{
		ID:         id.NewUUIDv7(),
		TenantID:   tenantID,
		Code:       in.Code,
		Title:      in.Title,
		CategoryID: in.CategoryID,
		Version:    1,
		Status:     StatusDraft,
		Content:    in.Content,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, apperr.Internal(err)
	}
	return doc, nil
}

// Get retrieves a tenant-owned document.
func (s *Service) Get(ctx context.Context, tenantID, docID string) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, tenantID, docID)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, apperr.NotFound("document not found")
		}
		return nil, apperr.Internal(err)
	}
	return doc, nil
}

// List retrieves all documents owned by the tenant.
func (s *Service) List(ctx context.Context, tenantID string) ([]*Document, error) {
	docs, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return docs, nil
}

// UpdateInput carries mutable document fields.
type UpdateInput struct {
	Title      string
	CategoryID string
	Content    string
}

// Update edits a document. Approved documents are immutable; editing means
// a new revision, which bumps the version and drops back to draft.
func (s *Service) Update(ctx context.Context, tenantID, docID string, in UpdateInput) (*Document, error) {
	doc, err := s.Get(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}

	if doc.Status == StatusApproved {
		doc.Version++
		doc.Status = StatusDraft
		doc.ApprovedBy = ""
		doc.ApprovedAt = nil
	}

	if in.Title != "" {
		doc.Title = in.Title
	}
	if in.CategoryID != "" {
		doc.CategoryID = in.CategoryID
	}
	if in.Content != "" {
		doc.Content = in.Content
	}
	doc.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, apperr.Internal(err)
	}
	return doc, nil
}

// Transition moves a document through the approval workflow. Approval
// stamps ApprovedAt and ApprovedBy.
func (s *Service) Transition(ctx context.Context, tenantID, docID, actorID string, target Status) (*Document, error) {
	if !IsValidStatus(target) {
		return nil, apperr.Validation("invalid status: " + string(target))
	}

	doc, err := s.Get(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(doc.Status, target) {
		return nil, apperr.Validation("illegal status transition: " + string(doc.Status) + " -> " + string(target))
	}

	now := time.Now()
	if target == StatusApproved {
		doc.ApprovedBy = actorID
		doc.ApprovedAt = &now
	}
	doc.Status = target
	doc.UpdatedAt = now

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, apperr.Internal(err)
	}
	return doc, nil
}

// Delete removes a tenant-owned document.
func (s *Service) Delete(ctx context.Context, tenantID, docID string) error {
	if _, err := s.Get(ctx, tenantID, docID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tenantID, docID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
