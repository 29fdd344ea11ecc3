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

package audit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/id"
)

// Service provides audit business logic
type Service struct {
	repo Repository
}

// NewService creates a new audit service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted when creating an audit.
type CreateInput struct {
	Title         string
	Type          string
	Scope         string
	LeadAuditorID string
	ScheduledFor  *time.Time
	Checklist     []string // requirement texts
}

// Create creates an audit plus its checklist rows in one transaction.
func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (*Audit, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return nil, apperr.Validation("type is required")
	}

	now := time.Now()
	a := &Audit{
		ID:            id.NewUUIDv7(),
		TenantID:      tenantID,
		Title:         in.Title,
		Type:          in.Type,
		Scope:         in.Scope,
		Status:        StatusPlanned,
		LeadAuditorID: in.LeadAuditorID,
		ScheduledFor:  in.ScheduledFor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	items := make([]*ChecklistItem, 0, len(in.Checklist))
	for _, requirement := range in.Checklist {
		if strings.TrimSpace(requirement) == "" {
			continue
		}
		items = append(items, &ChecklistItem{
			ID:          id.NewUUIDv7(),
			AuditID:     a.ID,
			Requirement: requirement,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.repo.CreateWithChecklist(ctx, a, items); err != nil {
		return nil, apperr.Internal(err)
	}

	return a, nil
}

// Get retrieves a tenant-owned audit.
func (s *Service) Get(ctx context.Context, tenantID, auditID string) (*Audit, error) {
	a, err := s.repo.GetByID(ctx, tenantID, auditID)
	if err != nil {
		if errors.Is(err, ErrAuditNotFound) {
			return nil, apperr.NotFound("audit not found")
		}
		return nil, apperr.Internal(err)
	}
	return a, nil
}

// List retrieves all audits owned by the tenant.
func (s *Service) List(ctx context.Context, tenantID string) ([]*Audit, error) {
	audits, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return audits, nil
}

// UpdateInput carries the mutable audit fields.
type UpdateInput struct {
	Title         string
	Scope         string
	LeadAuditorID string
	ScheduledFor  *time.Time
}

// Update modifies descriptive audit fields. Status moves through
// Transition, never through here.
func (s *Service) Update(ctx context.Context, tenantID, auditID string, in UpdateInput) (*Audit, error) {
	a, err := s.Get(ctx, tenantID, auditID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		a.Title = in.Title
	}
	if in.Scope != "" {
		a.Scope = in.Scope
	}
	if in.LeadAuditorID != "" {
		a.LeadAuditorID = in.LeadAuditorID
	}
	if in.ScheduledFor != nil {
		a.ScheduledFor = in.ScheduledFor
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, apperr.Internal(err)
	}
	return a, nil
}

// Transition moves an audit to a new status, enforcing the legal-transition
// table and stamping the derived timestamps: entering in_progress sets
// StartedAt if unset; entering a terminal state sets CompletedAt.
func (s *Service) Transition(ctx context.Context, tenantID, auditID string, target Status) (*Audit, error) {
	if !IsValidStatus(target) {
		return nil, apperr.Validation("invalid status: " + string(target))
	}

	a, err := s.Get(ctx, tenantID, auditID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(a.Status, target) {
		return nil, apperr.Validation("illegal status transition: " + string(a.Status) + " -> " + string(target))
	}

	now := time.Now()
	switch target {
	case StatusInProgress:
		if a.StartedAt == nil {
			a.StartedAt = &now
		}
	case StatusCompleted, StatusCancelled:
		a.CompletedAt = &now
	}
	a.Status = target
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, apperr.Internal(err)
	}
	return a, nil
}

// Checklist retrieves the checklist of a tenant-owned audit.
func (s *Service) Checklist(ctx context.Context, tenantID, auditID string) ([]*ChecklistItem, error) {
	if _, err := s.Get(ctx, tenantID, auditID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListChecklist(ctx, tenantID, auditID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return items, nil
}

// RecordResult stores the outcome of one checklist item.
func (s *Service) RecordResult(ctx context.Context, tenantID, auditID, itemID, result, notes string) error {
	if result != ResultConform && result != ResultNonConform {
		return apperr.Validation("result must be conform or non_conform")
	}

	if _, err := s.Get(ctx, tenantID, auditID); err != nil {
		return err
	}

	item := &ChecklistItem{
		ID:        itemID,
		AuditID:   auditID,
		Result:    result,
		Notes:     notes,
		UpdatedAt: time.Now(),
	}
	if err := s.repo.UpdateChecklistItem(ctx, tenantID, auditID, item); err != nil {
		if errors.Is(err, ErrChecklistNotFound) {
			return apperr.NotFound("checklist item not found")
		}
		return apperr.Internal(err)
	}
	return nil
}
