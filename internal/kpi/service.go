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

package kpi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/id"
)

// Service provides KPI business logic
type Service struct {
	repo Repository
}

// NewService creates a new KPI service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted on creation.
type CreateInput struct {
	Name        string
	Description string
	Unit        string
	TargetValue float64
	Frequency   string
}

// Create registers a new KPI.
func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (*KPI, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	now := time.Now()
	k := &KPI{
		ID:          id.NewUUIDv7(),
		TenantID:    tenantID,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		TargetValue: in.TargetValue,
		Frequency:   in.Frequency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, k); err != nil {
		return nil, apperr.Internal(err)
	}
	return k, nil
}

// Get retrieves a tenant-owned KPI.
func (s *Service) Get(ctx context.Context, tenantID, kpiID string) (*KPI, error) {
	k, err := s.repo.GetByID(ctx, tenantID, kpiID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("kpi not found")
		}
		return nil, apperr.Internal(err)
	}
	return k, nil
}

// List retrieves all KPIs owned by the tenant.
func (s *Service) List(ctx context.Context, tenantID string) ([]*KPI, error) {
	kpis, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return kpis, nil
}

// UpdateInput carries mutable fields.
type UpdateInput struct {
	Name        string
	Description string
	Unit        string
	TargetValue *float64
	Frequency   string
}

// Update modifies KPI metadata.
func (s *Service) Update(ctx context.Context, tenantID, kpiID string, in UpdateInput) (*KPI, error) {
	k, err := s.Get(ctx, tenantID, kpiID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		k.Name = in.Name
	}
	if in.Description != "" {
		k.Description = in.Description
	}
	if in.Unit != "" {
		k.Unit = in.Unit
	}
	if in.TargetValue != nil {
		k.TargetValue = *in.TargetValue
	}
	if in.Frequency != "" {
		k.Frequency = in.Frequency
	}
	k.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, k); err != nil {
		return nil, apperr.Internal(err)
	}
	return k, nil
}

// Measure records a new measurement: updates the current value and stamps
// MeasuredAt.
func (s *Service) Measure(ctx context.Context, tenantID, kpiID string, value float64) (*KPI, error) {
	k, err := s.Get(ctx, tenantID, kpiID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	k.CurrentValue = value
	k.MeasuredAt = &now
	k.UpdatedAt = now

	if err := s.repo.Update(ctx, k); err != nil {
		return nil, apperr.Internal(err)
	}
	return k, nil
}

// Delete removes a tenant-owned KPI.
func (s *Service) Delete(ctx context.Context, tenantID, kpiID string) error {
	if _, err := s.Get(ctx, tenantID, kpiID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tenantID, kpiID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
