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
	"testing"

	"github.com/complycore/complycore/internal/apperr"
)

// MockRepository is a simple in-memory implementation of Repository
type MockRepository struct {
	docs     map[string]*Document
	failWith error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{docs: make(map[string]*Document)}
}

func (m *MockRepository) Create(ctx context.Context, doc *Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, tenantID, docID string) (*Document, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	doc, ok := m.docs[docID]
	if !ok || doc.TenantID != tenantID {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (m *MockRepository) GetByCode(ctx context.Context, tenantID, code string) (*Document, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, doc := range m.docs {
		if doc.TenantID == tenantID && doc.Code == code {
			return doc, nil
		}
	}
	return nil, ErrDocumentNotFound
}

func (m *MockRepository) ListByTenant(ctx context.Context, tenantID string) ([]*Document, error) {
	var out []*Document
	for _, doc := range m.docs {
		if doc.TenantID == tenantID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *MockRepository) Update(ctx context.Context, doc *Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, tenantID, docID string) error {
	doc, ok := m.docs[docID]
	if !ok || doc.TenantID != tenantID {
		return ErrDocumentNotFound
	}
	delete(m.docs, docID)
	return nil
}

// TestPurpose: Validates document creation starts at version 1 in draft and that codes are unique per tenant but reusable across tenants.
// Scope: Unit Test
// Security: Tenant-scoped uniqueness constraint
// Expected: Duplicate code in the same tenant is a Conflict; the same code in another tenant succeeds.
// Test Case ID: DOC-01
func TestDocument_Service_Create_CodeUniqueness(t *testing.T) {
	repo := NewMockRepository()
	s := NewService(repo)
	ctx := context.Background()

	doc, err := s.Create(ctx, "tenant-1", "user-1", CreateInput{Code: "POL-001", Title: "Access Policy"})
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}
	if doc.Version != 1 || doc.Status != StatusDraft {
		t.Errorf("expected version 1 draft, got v%d %s", doc.Version, doc.Status)
	}

	_, err = s.Create(ctx, "tenant-1", "user-1", CreateInput{Code: "POL-001", Title: "Duplicate"})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("expected Conflict for duplicate code, got %v", err)
	}

	if _, err := s.Create(ctx, "tenant-2", "user-9", CreateInput{Code: "POL-001", Title: "Other Org"}); err != nil {
		t.Errorf("same code in another tenant must succeed, got %v", err)
	}
}

// TestPurpose: Validates the document approval workflow including the rejected-back-to-review path.
// Scope: Unit Test
// Expected: draft->in_review->approved stamps approver and timestamp; draft->approved is illegal; rejected may re-enter review.
// Test Case ID: DOC-02
func TestDocument_Service_Transition(t *testing.T) {
	repo := NewMockRepository()
	s := NewService(repo)
	ctx := context.Background()

	doc, err := s.Create(ctx, "tenant-1", "author-1", CreateInput{Code: "SOP-7", Title: "Backups"})
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}

	if _, err := s.Transition(ctx, "tenant-1", doc.ID, "approver-1", StatusApproved); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for draft->approved, got %v", err)
	}

	if _, err := s.Transition(ctx, "tenant-1", doc.ID, "author-1", StatusInReview); err != nil {
		t.Fatalf("draft->in_review failed: %v", err)
	}

	rejected, err := s.Transition(ctx, "tenant-1", doc.ID, "approver-1", StatusRejected)
	if err != nil {
		t.Fatalf("in_review->rejected failed: %v", err)
	}
	if rejected.ApprovedBy != "" || rejected.ApprovedAt != nil {
		t.Error("rejection must not stamp approval fields")
	}

	if _, err := s.Transition(ctx, "tenant-1", doc.ID, "author-1", StatusInReview); err != nil {
		t.Fatalf("rejected->in_review failed: %v", err)
	}

	approved, err := s.Transition(ctx, "tenant-1", doc.ID, "approver-1", StatusApproved)
	if err != nil {
		t.Fatalf("in_review->approved failed: %v", err)
	}
	if approved.ApprovedBy != "approver-1" || approved.ApprovedAt == nil {
		t.Errorf("approval stamp missing: %+v", approved)
	}

	// Approved is terminal on the workflow; revisions go through Update.
	if _, err := s.Transition(ctx, "tenant-1", doc.ID, "x", StatusInReview); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for approved->in_review, got %v", err)
	}
}

// TestPurpose: Validates that editing an approved document creates a new revision rather than mutating the approved state.
// Scope: Unit Test
// Expected: Update on an approved document bumps the version, resets to draft, and clears the approval stamp.
// Test Case ID: DOC-03
func TestDocument_Service_Update_ApprovedBumpsVersion(t *testing.T) {
	repo := NewMockRepository()
	s := NewService(repo)
	ctx := context.Background()

	doc, err := s.Create(ctx, "tenant-1", "author-1", CreateInput{Code: "SOP-7", Title: "Backups"})
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}
	if _, err := s.Transition(ctx, "tenant-1", doc.ID, "author-1", StatusInReview); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Transition(ctx, "tenant-1", doc.ID, "approver-1", StatusApproved); err != nil {
		t.Fatal(err)
	}

	revised, err := s.Update(ctx, "tenant-1", doc.ID, UpdateInput{Content: "restore drills quarterly"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if revised.Version != 2 {
		t.Errorf("expected version 2, got %d", revised.Version)
	}
	if revised.Status != StatusDraft {
		t.Errorf("expected draft after revision, got %s", revised.Status)
	}
	if revised.ApprovedBy != "" || revised.ApprovedAt != nil {
		t.Error("approval stamp must be cleared on revision")
	}

	// A draft edit does not bump the version again.
	again, err := s.Update(ctx, "tenant-1", doc.ID, UpdateInput{Title: "Backups and Restores"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if again.Version != 2 {
		t.Errorf("draft edit must keep version 2, got %d", again.Version)
	}
}

// TestPurpose: Validates documents of another tenant are invisible to reads, updates, and deletes.
// Scope: Unit Test
// Security: Tenant isolation (existence masking)
// Expected: NotFound for every cross-tenant access; the document survives a foreign delete attempt.
// Test Case ID: DOC-04
func TestDocument_Service_CrossTenant(t *testing.T) {
	repo := NewMockRepository()
	s := NewService(repo)
	ctx := context.Background()

	doc, err := s.Create(ctx, "tenant-1", "author-1", CreateInput{Code: "POL-9", Title: "Secret"})
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}

	if _, err := s.Get(ctx, "tenant-2", doc.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
	if err := s.Delete(ctx, "tenant-2", doc.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
	if _, ok := repo.docs[doc.ID]; !ok {
		t.Error("document must survive a cross-tenant delete attempt")
	}

	if err := s.Delete(ctx, "tenant-1", doc.ID); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
}

// TestPurpose: Validates that a failing store surfaces as an internal error, not as a missing document.
// Scope: Unit Test
// Expected: Lookup and the code-uniqueness check map store failures to Internal; absence still maps to NotFound.
// Test Case ID: DOC-05
func TestDocument_Service_StoreFailure(t *testing.T) {
	repo := NewMockRepository()
	s := NewService(repo)
	ctx := context.Background()

	doc, err := s.Create(ctx, "tenant-1", "user-1", CreateInput{Code: "POL-013", Title: "Retention Policy"})
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}

	if _, err := s.Get(ctx, "tenant-1", "missing"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound for absent document, got %v", err)
	}

	repo.failWith = errors.New("write tcp 10.0.0.5:5432: i/o timeout")
	if _, err := s.Get(ctx, "tenant-1", doc.ID); apperr.KindOf(err) != apperr.KindInternal {
		t.Errorf("expected Internal for store failure, got %v", err)
	}
	if _, err := s.Create(ctx, "tenant-1", "user-1", CreateInput{Code: "POL-014", Title: "Backup Policy"}); apperr.KindOf(err) != apperr.KindInternal {
		t.Errorf("expected Internal when the uniqueness check fails, got %v", err)
	}
}
