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

// Package sysconfig manages global runtime configuration stored as rows.
// Secret values never leave this package unmasked.
package sysconfig

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("config entry not found")

// MaskValue is the fixed placeholder secrets are rendered as. An update
// carrying this literal means "no change requested", never a literal write;
// otherwise a client that round-trips a read would destroy the real secret.
const MaskValue = "********"

// Entry is one configuration row. Config is global, not tenant-scoped.
type Entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Category  string    `json:"category,omitempty"`
	IsSecret  bool      `json:"isSecret"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Masked returns a projection safe for responses: secret values are
// replaced with MaskValue.
func (e *Entry) Masked() *Entry {
	if !e.IsSecret {
		return e
	}
	masked := *e
	masked.Value = MaskValue
	return &masked
}

// Repository defines the interface for config persistence
type Repository interface {
	// Get retrieves one entry by key
	Get(ctx context.Context, key string) (*Entry, error)

	// List retrieves all entries
	List(ctx context.Context) ([]*Entry, error)

	// Upsert inserts or replaces an entry
	Upsert(ctx context.Context, entry *Entry) error

	// Delete removes an entry
	Delete(ctx context.Context, key string) error
}
