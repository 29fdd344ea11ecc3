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
	"time"
)

var ErrNotFound = errors.New("kpi not found")

// KPI is a measurable indicator tracked against a target.
type KPI struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenantId"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Unit         string     `json:"unit,omitempty"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue float64    `json:"currentValue"`
	Frequency    string     `json:"frequency,omitempty"`
	MeasuredAt   *time.Time `json:"measuredAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Repository defines the interface for KPI persistence
type Repository interface {
	Create(ctx context.Context, k *KPI) error
	GetByID(ctx context.Context, tenantID, kpiID string) (*KPI, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*KPI, error)
	Update(ctx context.Context, k *KPI) error
	Delete(ctx context.Context, tenantID, kpiID string) error
}
