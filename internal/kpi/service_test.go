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
	"testing"

	"github.com/complycore/complycore/internal/apperr"
)

// MockRepository is a simple in-memory implementation of Repository
type MockRepository struct {
	kpis     map[string]*KPI
	failWith error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{kpis: make(map[string]*KPI)}
}

func (m *MockRepository) Create(ctx context.Context, k *KPI) error {
	m.kpis[k.ID] = k
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, tenantID, kpiID string) (*KPI, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	k, ok := m.kpis[kpiID]
	if !ok || k.TenantID != tenantID {
		return nil, ErrNotFound
	}
	return k, nil
}

func (m *MockRepository) ListByTenant(ctx context.Context, tenantID string) ([]*KPI, error) {
	var out []*KPI
	for _, k := range m.kpis {
		if k.TenantID == tenantID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m *MockRepository) Update(ctx context.Context, k *KPI) error {
	m.kpis[k.ID] = k
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, tenantID, kpiID string) error {
	k, ok := m.kpis[kpiID]
	if !ok || k.TenantID != tenantID {
		return ErrNotFound
	}
	delete(m.kpis, kpiID)
	return nil
}

// TestPurpose: Validates measurement recording: current value updated and MeasuredAt stamped, including a zero measurement.
// Scope: Unit Test
// Expected: Measure(0) overwrites the current value and stamps MeasuredAt; the target is untouched.
// Test Case ID: KPI-01
func TestKPI_Service_Measure(t *testing.T) {
	repo := NewMockRepository()
	s := NewService(repo)
	ctx := context.Background()

	k, err := s.Create(ctx, "tenant-1", CreateInput{Name: "Open NC count", TargetValue: 5, Unit: "count"})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if k.MeasuredAt != nil {
		t.Error("a fresh KPI has no measurement")
	}

	measured, err := s.Measure(ctx, "tenant-1", k.ID, 12)
	if err != nil {
		t.Fatalf("measure failed: %v", err)
	}
	if measured.CurrentValue != 12 || measured.MeasuredAt == nil {
		t.Errorf("measurement not recorded: %+v", measured)
	}

	// Zero is a legitimate measurement, not an omitted one.
	measured, err = s.Measure(ctx, "tenant-1", k.ID, 0)
	if err != nil {
		t.Fatalf("measure failed: %v", err)
	}
	if measured.CurrentValue != 0 {
		t.Errorf("expected current value 0, got %v", measured.CurrentValue)
	}
	if measured.TargetValue != 5 {
		t.Errorf("target must be untouched, got %v", measured.TargetValue)
	}
}

// TestPurpose: Validates KPI updates distinguish "target not supplied" from "target set to zero" via a pointer field.
// Scope: Unit Test
// Expected: Nil target leaves the stored value; explicit zero overwrites it; name is required on create.
// Test Case ID: KPI-02
func TestKPI_Service_Update_Target(t *testing.T) {
	repo := NewMockRepository()
	s := NewService(repo)
	ctx := context.Background()

	if _, err := s.Create(ctx, "tenant-1", CreateInput{}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for missing name, got %v", err)
	}

	k, err := s.Create(ctx, "tenant-1", CreateInput{Name: "Training completion", TargetValue: 95, Unit: "%"})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	updated, err := s.Update(ctx, "tenant-1", k.ID, UpdateInput{Description: "annual security training"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.TargetValue != 95 {
		t.Errorf("nil target must not change the value, got %v", updated.TargetValue)
	}

	zero := 0.0
	updated, err = s.Update(ctx, "tenant-1", k.ID, UpdateInput{TargetValue: &zero})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.TargetValue != 0 {
		t.Errorf("explicit zero target must stick, got %v", updated.TargetValue)
	}
}

// TestPurpose: Validates cross-tenant access to KPIs is masked as not found.
// Scope: Unit Test
// Security: Tenant isolation (existence masking)
// Expected: NotFound for measure and delete from a foreign tenant.
// Test Case ID: KPI-03
func TestKPI_Service_CrossTenant(t *testing.T) {
	repo := NewMockRepository()
	s := NewService(repo)
	ctx := context.Background()

	k, err := s.Create(ctx, "tenant-1", CreateInput{Name: "Private"})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	if _, err := s.Measure(ctx, "tenant-2", k.ID, 1); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
	if err := s.Delete(ctx, "tenant-2", k.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
	if _, ok := repo.kpis[k.ID]; !ok {
		t.Error("kpi must survive a cross-tenant delete attempt")
	}
}

// TestPurpose: Validates that a failing store surfaces as an internal error, not as a missing KPI.
// Scope: Unit Test
// Expected: A lookup failing for any reason other than absence maps to Internal; absence still maps to NotFound.
// Test Case ID: KPI-04
func TestKPI_Service_StoreFailure(t *testing.T) {
	repo := NewMockRepository()
	s := NewService(repo)
	ctx := context.Background()

	k, err := s.Create(ctx, "tenant-1", CreateInput{Name: "Audit findings closed", Unit: "count"})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	if _, err := s.Get(ctx, "tenant-1", "missing"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound for absent kpi, got %v", err)
	}

	repo.failWith = errors.New("write tcp 10.0.0.5:5432: i/o timeout")
	if _, err := s.Get(ctx, "tenant-1", k.ID); apperr.KindOf(err) != apperr.KindInternal {
		t.Errorf("expected Internal for store failure, got %v", err)
	}
	if _, err := s.Measure(ctx, "tenant-1", k.ID, 3); apperr.KindOf(err) != apperr.KindInternal {
		t.Errorf("expected Internal for store failure during measure, got %v", err)
	}
}
