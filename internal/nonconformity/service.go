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

package nonconformity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/id"
)

// Service provides non-conformity business logic
type Service struct {
	repo Repository
}

// NewService creates a new non-conformity service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted on creation.
type CreateInput struct {
	Title       string
	Description string
	Severity    string
	AuditID     string
	AssigneeID  string
	DueDate     *time.Time
}

// Create records a new non-conformity in open state.
func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (*NonConformity, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if !IsValidSeverity(in.Severity) {
		return nil, apperr.Validation("severity must be minor, major, or critical")
	}

	now := time.Now()
	nc := &NonConformity{
		ID:          id.NewUUIDv7(),
		TenantID:    tenantID,
		Title:       in.Title,
		Description: in.Description,
		Severity:    in.Severity,
		Status:      StatusOpen,
		AuditID:     in.AuditID,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, nc); err != nil {
		return nil, apperr.Internal(err)
	}
	return nc, nil
}

// Get retrieves a tenant-owned non-conformity.
func (s *Service) Get(ctx context.Context, tenantID, ncID string) (*NonConformity, error) {
	nc, err := s.repo.GetByID(ctx, tenantID, ncID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("non-conformity not found")
		}
		return nil, apperr.Internal(err)
	}
	return nc, nil
}

// List retrieves all non-conformities owned by the tenant.
func (s *Service) List(ctx context.Context, tenantID string) ([]*NonConformity, error) {
	ncs, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return ncs, nil
}

// UpdateInput carries mutable fields.
type UpdateInput struct {
	Title       string
	Description string
	Severity    string
	AssigneeID  string
	DueDate     *time.Time
}

// Update modifies descriptive fields.
func (s *Service) Update(ctx context.Context, tenantID, ncID string, in UpdateInput) (*NonConformity, error) {
	nc, err := s.Get(ctx, tenantID, ncID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		nc.Title = in.Title
	}
	if in.Description != "" {
		nc.Description = in.Description
	}
	if in.Severity != "" {
		if !IsValidSeverity(in.Severity) {
			return nil, apperr.Validation("severity must be minor, major, or critical")
		}
		nc.Severity = in.Severity
	}
	if in.AssigneeID != "" {
		nc.AssigneeID = in.AssigneeID
	}
	if in.DueDate != nil {
		nc.DueDate = in.DueDate
	}
	nc.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, nc); err != nil {
		return nil, apperr.Internal(err)
	}
	return nc, nil
}

// Transition moves a non-conformity to a new status. Closing stamps
// ClosedAt.
func (s *Service) Transition(ctx context.Context, tenantID, ncID string, target Status) (*NonConformity, error) {
	nc, err := s.Get(ctx, tenantID, ncID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(nc.Status, target) {
		return nil, apperr.Validation("illegal status transition: " + string(nc.Status) + " -> " + string(target))
	}

	now := time.Now()
	if target == StatusClosed {
		nc.ClosedAt = &now
	}
	nc.Status = target
	nc.UpdatedAt = now

	if err := s.repo.Update(ctx, nc); err != nil {
		return nil, apperr.Internal(err)
	}
	return nc, nil
}
