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

package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/id"
)

// Service provides category business logic
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a category to the tenant.
func (s *Service) Create(ctx context.Context, tenantID, name, kind string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name is required")
	}

	now := time.Now()
	c := &Category{
		ID:        id.NewUUIDv7(),
		TenantID:  tenantID,
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperr.Internal(err)
	}
	return c, nil
}

// Get retrieves a tenant-owned category.
func (s *Service) Get(ctx context.Context, tenantID, categoryID string) (*Category, error) {
	c, err := s.repo.GetByID(ctx, tenantID, categoryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, apperr.Internal(err)
	}
	return c, nil
}

// List retrieves all categories owned by the tenant.
func (s *Service) List(ctx context.Context, tenantID string) ([]*Category, error) {
	categories, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}

// Update renames a category.
func (s *Service) Update(ctx context.Context, tenantID, categoryID, name, kind string) (*Category, error) {
	c, err := s.Get(ctx, tenantID, categoryID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		c.Name = name
	}
	if kind != "" {
		c.Kind = kind
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apperr.Internal(err)
	}
	return c, nil
}

// Delete removes a tenant-owned category.
func (s *Service) Delete(ctx context.Context, tenantID, categoryID string) error {
	if _, err := s.Get(ctx, tenantID, categoryID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tenantID, categoryID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
