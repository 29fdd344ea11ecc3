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

package sysconfig

import (
	"context"
	"testing"
	"time"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/auditlog"
)

// MockRepository is a simple in-memory implementation of Repository that
// counts reads so cache behavior is observable.
type MockRepository struct {
	entries map[string]*Entry
	gets    int
	lists   int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{entries: make(map[string]*Entry)}
}

func (m *MockRepository) Get(ctx context.Context, key string) (*Entry, error) {
	m.gets++
	e, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *MockRepository) List(ctx context.Context) ([]*Entry, error) {
	m.lists++
	out := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockRepository) Upsert(ctx context.Context, entry *Entry) error {
	copied := *entry
	m.entries[entry.Key] = &copied
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func newTestService(repo *MockRepository) *Service {
	return NewService(repo, 5*time.Minute, 10*time.Minute, auditlog.NewSlogLogger())
}

// TestPurpose: Validates that secret values are masked on every read surface while non-secret values pass through untouched.
// Scope: Unit Test
// Security: Secret exposure prevention
// Expected: Get and List render secrets as the mask literal; RawValue returns the stored value for internal consumers.
// Test Case ID: CFG-01
func TestSysconfig_Service_SecretMasking(t *testing.T) {
	repo := NewMockRepository()
	s := newTestService(repo)
	ctx := context.Background()

	if _, err := s.Set(ctx, "actor-1", "smtp.password", "hunter2", "mail", true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := s.Set(ctx, "actor-1", "app.name", "ComplyCore", "general", false); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	secret, err := s.Get(ctx, "smtp.password")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if secret.Value != MaskValue {
		t.Errorf("secret must be masked, got %q", secret.Value)
	}

	plain, err := s.Get(ctx, "app.name")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if plain.Value != "ComplyCore" {
		t.Errorf("non-secret must pass through, got %q", plain.Value)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, e := range all {
		if e.IsSecret && e.Value != MaskValue {
			t.Errorf("list leaked secret %q", e.Key)
		}
	}

	raw, err := s.RawValue(ctx, "smtp.password")
	if err != nil {
		t.Fatalf("raw read failed: %v", err)
	}
	if raw != "hunter2" {
		t.Errorf("raw read must be unmasked, got %q", raw)
	}
}

// TestPurpose: Validates the mask-literal round-trip rule: writing the mask back keeps the stored secret, while the mask on a new key is rejected.
// Scope: Unit Test
// Security: Prevents masked reads from destroying stored secrets
// Expected: Set with the mask literal keeps "hunter2"; creating a new entry with the mask literal is a validation error.
// Test Case ID: CFG-02
func TestSysconfig_Service_MaskLiteralRoundTrip(t *testing.T) {
	repo := NewMockRepository()
	s := newTestService(repo)
	ctx := context.Background()

	if _, err := s.Set(ctx, "actor-1", "smtp.password", "hunter2", "mail", true); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// Client edits something else and writes back the masked view.
	if _, err := s.Set(ctx, "actor-1", "smtp.password", MaskValue, "", true); err != nil {
		t.Fatalf("mask round-trip failed: %v", err)
	}
	if repo.entries["smtp.password"].Value != "hunter2" {
		t.Errorf("stored secret destroyed: %q", repo.entries["smtp.password"].Value)
	}
	if repo.entries["smtp.password"].Category != "mail" {
		t.Errorf("empty category must inherit, got %q", repo.entries["smtp.password"].Category)
	}

	_, err := s.Set(ctx, "actor-1", "fresh.key", MaskValue, "", true)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for mask on new entry, got %v", err)
	}
}

// TestPurpose: Validates the read-through cache: repeated reads hit the cache, and writes invalidate so the next read observes the new value.
// Scope: Unit Test
// Expected: Second Get causes no repository read; after Set the repository is consulted again and returns the updated value.
// Test Case ID: CFG-03
func TestSysconfig_Service_CacheInvalidation(t *testing.T) {
	repo := NewMockRepository()
	s := newTestService(repo)
	ctx := context.Background()

	if _, err := s.Set(ctx, "actor-1", "app.name", "v1", "general", false); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	repo.gets = 0

	if _, err := s.Get(ctx, "app.name"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "app.name"); err != nil {
		t.Fatal(err)
	}
	if repo.gets != 1 {
		t.Errorf("expected 1 repository read, got %d", repo.gets)
	}

	if _, err := s.Set(ctx, "actor-1", "app.name", "v2", "general", false); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := s.Get(ctx, "app.name")
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != "v2" {
		t.Errorf("stale read after invalidation, got %q", got.Value)
	}

	// List cache invalidates on write too.
	if _, err := s.List(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.List(ctx); err != nil {
		t.Fatal(err)
	}
	if repo.lists != 1 {
		t.Errorf("expected 1 repository list, got %d", repo.lists)
	}
	if _, err := s.Set(ctx, "actor-1", "other.key", "x", "", false); err != nil {
		t.Fatal(err)
	}
	if _, err := s.List(ctx); err != nil {
		t.Fatal(err)
	}
	if repo.lists != 2 {
		t.Errorf("expected list cache invalidated by write, got %d reads", repo.lists)
	}
}

// TestPurpose: Validates key requirements and missing-entry handling.
// Scope: Unit Test
// Expected: Blank keys are validation errors; unknown keys are NotFound on Get and Delete.
// Test Case ID: CFG-04
func TestSysconfig_Service_KeyValidation(t *testing.T) {
	repo := NewMockRepository()
	s := newTestService(repo)
	ctx := context.Background()

	if _, err := s.Get(ctx, "  "); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for blank key, got %v", err)
	}
	if _, err := s.Get(ctx, "nope"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
	if err := s.Delete(ctx, "actor-1", "nope"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}
