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
	"time"
)

var ErrNotFound = errors.New("risk not found")

// Mitigation statuses
const (
	StatusOpen       = "open"
	StatusMitigating = "mitigating"
	StatusAccepted   = "accepted"
	StatusClosed     = "closed"
)

// IsValidStatus reports whether s is a defined mitigation status.
func IsValidStatus(s string) bool {
	return s == StatusOpen || s == StatusMitigating || s == StatusAccepted || s == StatusClosed
}

// Level bands derived from score = likelihood * impact on 5x5 scales.
const (
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

// LevelFor maps a score to its band.
func LevelFor(score int) string {
	switch {
	case score <= 4:
		return LevelLow
	case score <= 9:
		return LevelModerate
	case score <= 15:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// Risk is an identified risk scored likelihood x impact.
type Risk struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenantId"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Likelihood     int       `json:"likelihood"`
	Impact         int       `json:"impact"`
	Score          int       `json:"score"`
	Level          string    `json:"level"`
	MitigationPlan string    `json:"mitigationPlan,omitempty"`
	Status         string    `json:"status"`
	OwnerID        string    `json:"ownerId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Repository defines the interface for risk persistence
type Repository interface {
	Create(ctx context.Context, r *Risk) error
	GetByID(ctx context.Context, tenantID, riskID string) (*Risk, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Risk, error)
	Update(ctx context.Context, r *Risk) error
	Delete(ctx context.Context, tenantID, riskID string) error
}
