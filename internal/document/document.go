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

// Package document models controlled documents and their approval workflow.
package document

import (
	"context"
	"errors"
	"time"
)

// Domain errors
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrCodeTaken        = errors.New("document code already in use")
)

// Status is the approval workflow state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusInReview Status = "in_review"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// legalTransitions maps a target status to its legal predecessor states.
// Approved is terminal; a rejected document goes back through review.
var legalTransitions = map[Status][]Status{
	StatusInReview: {StatusDraft, StatusRejected},
	StatusApproved: {StatusInReview},
	StatusRejected: {StatusInReview},
}

// CanTransition reports whether moving from -> to is legal.
func CanTransition(from, to Status) bool {
	for _, legal := range legalTransitions[to] {
		if from == legal {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is a defined status value.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusInReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Document represents a controlled document. Code is unique per tenant.
type Document struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenantId"`
	Code       string     `json:"code"`
	Title      string     `json:"title"`
	CategoryID string     `json:"categoryId,omitempty"`
	Version    int        `json:"version"`
	Status     Status     `json:"status"`
	Content    string     `json:"content,omitempty"`
	CreatedBy  string     `json:"createdBy"`
	ApprovedBy string     `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Repository defines the interface for document persistence
type Repository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, tenantID, docID string) (*Document, error)
	GetByCode(ctx context.Context, tenantID, code string) (*Document, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Document, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, tenantID, docID string) error
}
