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

package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/auditlog"
	"github.com/complycore/complycore/internal/id"
)

// Service provides tenant management business logic
type Service struct {
	repo        Repository
	auditLogger auditlog.Logger
}

// NewService creates a new tenant service
func NewService(repo Repository, auditLogger auditlog.Logger) *Service {
	return &Service{
		repo:        repo,
		auditLogger: auditLogger,
	}
}

// CreateTenant creates a new tenant with a subdomain slugified from the
// company name. Subdomains are globally unique; collisions get a numeric
// suffix.
func (s *Service) CreateTenant(ctx context.Context, companyName, planType string) (*Tenant, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, apperr.Validation("company name is required")
	}
	if planType == "" {
		planType = PlanFree
	}

	subdomain, err := s.availableSubdomain(ctx, Slugify(companyName))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tenant := &Tenant{
		ID:          id.NewUUIDv7(),
		CompanyName: companyName,
		Subdomain:   subdomain,
		PlanType:    planType,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, apperr.Internal(err)
	}

	return tenant, nil
}

// availableSubdomain probes for the first free subdomain based on the slug.
func (s *Service) availableSubdomain(ctx context.Context, slug string) (string, error) {
	if slug == "" || slug == SystemSubdomain {
		return "", apperr.Validation("company name does not yield a usable subdomain")
	}

	candidate := slug
	for i := 2; ; i++ {
		_, err := s.repo.GetBySubdomain(ctx, candidate)
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				return candidate, nil
			}
			return "", apperr.Internal(err)
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
		if i > 100 {
			return "", apperr.Internal(fmt.Errorf("no free subdomain for slug %q", slug))
		}
	}
}

// GetTenant retrieves a tenant by ID.
func (s *Service) GetTenant(ctx context.Context, tenantID string) (*Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, apperr.NotFound("tenant not found")
		}
		return nil, apperr.Internal(err)
	}
	return tenant, nil
}

// ListTenants lists tenants with pagination. Super-admin surface only.
func (s *Service) ListTenants(ctx context.Context, limit, offset int) ([]*Tenant, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	tenants, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tenants, nil
}

// UpdateTenant updates company name, plan, or status.
func (s *Service) UpdateTenant(ctx context.Context, tenantID, companyName, planType, status string) (*Tenant, error) {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if companyName != "" {
		tenant.CompanyName = companyName
	}
	if planType != "" {
		tenant.PlanType = planType
	}
	if status != "" {
		if status != StatusActive && status != StatusDisabled {
			return nil, apperr.Validation("invalid status: " + status)
		}
		tenant.Status = status
	}
	tenant.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, apperr.Internal(err)
	}
	return tenant, nil
}

// DeleteTenant hard-deletes a tenant and all dependent rows. The tenant
// whose subdomain is "system" can never be deleted, not even by super_admin.
func (s *Service) DeleteTenant(ctx context.Context, actorID, tenantID string) error {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	if tenant.Subdomain == SystemSubdomain {
		return apperr.Forbidden("the system tenant cannot be deleted")
	}

	if err := s.repo.Delete(ctx, tenantID); err != nil {
		return apperr.Internal(err)
	}

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypeTenantDeleted,
		TenantID: tenantID,
		ActorID:  actorID,
		Resource: "tenant",
		Metadata: map[string]any{"subdomain": tenant.Subdomain},
	})

	return nil
}

// Slugify lowers a company name to subdomain form: lowercase alphanumerics
// with single dashes, e.g. "Acme Inc" -> "acme-inc".
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
