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

package risk

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/id"
)

// Service provides risk register business logic
type Service struct {
	repo Repository
}

// NewService creates a new risk service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted on creation.
type CreateInput struct {
	Title          string
	Description    string
	Likelihood     int
	Impact         int
	MitigationPlan string
	OwnerID        string
}

// Create registers a new risk. Score and level are derived, never supplied.
func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (*Risk, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if err := validateScale(in.Likelihood, in.Impact); err != nil {
		return nil, err
	}

	now := time.Now()
	score := in.Likelihood * in.Impact
	r := &Risk{
		ID:             id.NewUUIDv7(),
		TenantID:       tenantID,
		Title:          in.Title,
		Description:    in.Description,
		Likelihood:     in.Likelihood,
		Impact:         in.Impact,
		Score:          score,
		Level:          LevelFor(score),
		MitigationPlan: in.MitigationPlan,
		Status:         StatusOpen,
		OwnerID:        in.OwnerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, apperr.Internal(err)
	}
	return r, nil
}

// Get retrieves a tenant-owned risk.
func (s *Service) Get(ctx context.Context, tenantID, riskID string) (*Risk, error) {
	r, err := s.repo.GetByID(ctx, tenantID, riskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("risk not found")
		}
		return nil, apperr.Internal(err)
	}
	return r, nil
}

// List retrieves all risks owned by the tenant.
func (s *Service) List(ctx context.Context, tenantID string) ([]*Risk, error) {
	risks, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return risks, nil
}

// UpdateInput carries mutable fields. A zero likelihood or impact means
// "leave unchanged".
type UpdateInput struct {
	Title          string
	Description    string
	Likelihood     int
	Impact         int
	MitigationPlan string
	Status         string
	OwnerID        string
}

// Update modifies a risk and recomputes score and level when the scales
// change.
func (s *Service) Update(ctx context.Context, tenantID, riskID string, in UpdateInput) (*Risk, error) {
	r, err := s.Get(ctx, tenantID, riskID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		r.Title = in.Title
	}
	if in.Description != "" {
		r.Description = in.Description
	}
	if in.Likelihood != 0 || in.Impact != 0 {
		likelihood, impact := r.Likelihood, r.Impact
		if in.Likelihood != 0 {
			likelihood = in.Likelihood
		}
		if in.Impact != 0 {
			impact = in.Impact
		}
		if err := validateScale(likelihood, impact); err != nil {
			return nil, err
		}
		r.Likelihood = likelihood
		r.Impact = impact
		r.Score = likelihood * impact
		r.Level = LevelFor(r.Score)
	}
	if in.MitigationPlan != "" {
		r.MitigationPlan = in.MitigationPlan
	}
	if in.Status != "" {
		if !IsValidStatus(in.Status) {
			return nil, apperr.Validation("invalid status: " + in.Status)
		}
		r.Status = in.Status
	}
	if in.OwnerID != "" {
		r.OwnerID = in.OwnerID
	}
	r.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, apperr.Internal(err)
	}
	return r, nil
}

// Delete removes a tenant-owned risk.
func (s *Service) Delete(ctx context.Context, tenantID, riskID string) error {
	if _, err := s.Get(ctx, tenantID, riskID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tenantID, riskID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func validateScale(likelihood, impact int) error {
	if likelihood < 1 || likelihood > 5 {
		return apperr.Validation("likelihood must be between 1 and 5")
	}
	if impact < 1 || impact > 5 {
		return apperr.Validation("impact must be between 1 and 5")
	}
	return nil
}
