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

// Package audit models compliance audits and their checklist items.
package audit

import (
	"context"
	"errors"
	"time"
)

// Domain errors
var (
	ErrAuditNotFound     = errors.New("audit not found")
	ErrChecklistNotFound = errors.New("checklist item not found")
)

// Status is a closed enumeration. Transitions outside the table below are
// rejected as validation errors.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// legalTransitions maps a target status to its legal predecessor states.
var legalTransitions = map[Status][]Status{
	StatusInProgress: {StatusPlanned},
	StatusCompleted:  {StatusInProgress},
	StatusCancelled:  {StatusPlanned, StatusInProgress},
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
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Audit represents a scheduled or running compliance audit.
type Audit struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"tenantId"`
	Title         string     `json:"title"`
	Type          string     `json:"type"`
	Scope         string     `json:"scope"`
	Status        Status     `json:"status"`
	LeadAuditorID string     `json:"leadAuditorId,omitempty"`
	ScheduledFor  *time.Time `json:"scheduledFor,omitempty"`
	StartedAt     *time.Time `json:"startedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ChecklistItem is a single requirement checked during an audit. Items live
// and die with their parent audit.
type ChecklistItem struct {
	ID          string    `json:"id"`
	AuditID     string    `json:"auditId"`
	Requirement string    `json:"requirement"`
	Result      string    `json:"result,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Checklist item results
const (
	ResultConform    = "conform"
	ResultNonConform = "non_conform"
	ResultNotChecked = ""
)

// Repository defines the interface for audit persistence. All reads and
// writes are tenant-scoped at the query level.
type Repository interface {
	// CreateWithChecklist inserts an audit and its checklist rows as one
	// transaction. A failure after the audit insert must roll back the
	// audit row rather than surface a half-created record as success.
	CreateWithChecklist(ctx context.Context, audit *Audit, items []*ChecklistItem) error

	// GetByID retrieves an audit owned by the tenant
	GetByID(ctx context.Context, tenantID, auditID string) (*Audit, error)

	// ListByTenant retrieves all audits owned by the tenant
	ListByTenant(ctx context.Context, tenantID string) ([]*Audit, error)

	// Update persists mutable audit fields
	Update(ctx context.Context, audit *Audit) error

	// ListChecklist retrieves the checklist of a tenant-owned audit
	ListChecklist(ctx context.Context, tenantID, auditID string) ([]*ChecklistItem, error)

	// UpdateChecklistItem records a result for one checklist item
	UpdateChecklistItem(ctx context.Context, tenantID, auditID string, item *ChecklistItem) error
}
