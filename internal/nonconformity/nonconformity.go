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

package nonconformity

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("non-conformity not found")

// Status lifecycle: open -> in_progress -> closed, or straight to closed.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

var legalTransitions = map[Status][]Status{
	StatusInProgress: {StatusOpen},
	StatusClosed:     {StatusOpen, StatusInProgress},
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

// Severity levels
const (
	SeverityMinor    = "minor"
	SeverityMajor    = "major"
	SeverityCritical = "critical"
)

// IsValidSeverity reports whether s is a defined severity.
func IsValidSeverity(s string) bool {
	return s == SeverityMinor || s == SeverityMajor || s == SeverityCritical
}

// NonConformity is a deviation found during an audit or reported directly.
type NonConformity struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenantId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Severity    string     `json:"severity"`
	Status      Status     `json:"status"`
	AuditID     string     `json:"auditId,omitempty"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Repository defines the interface for non-conformity persistence
type Repository interface {
	Create(ctx context.Context, nc *NonConformity) error
	GetByID(ctx context.Context, tenantID, ncID string) (*NonConformity, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*NonConformity, error)
	Update(ctx context.Context, nc *NonConformity) error
}
