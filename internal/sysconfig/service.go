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
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/auditlog"
)

const listCacheKey = "__all__"

// Service wires config persistence with a short-lived read-through cache.
// Reads land on the cache most of the time; every write invalidates so a
// follow-up read observes the new value immediately on this instance.
type Service struct {
	repo        Repository
	cache       *gocache.Cache
	auditLogger auditlog.Logger
}

// NewService creates a config service. ttl bounds how stale a cached read
// may be across instances that did not perform the write.
func NewService(repo Repository, ttl, cleanupInterval time.Duration, auditLogger auditlog.Logger) *Service {
	return &Service{
		repo:        repo,
		cache:       gocache.New(ttl, cleanupInterval),
		auditLogger: auditLogger,
	}
}

// Get returns one entry with secrets masked.
func (s *Service) Get(ctx context.Context, key string) (*Entry, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperr.Validation("config key is required")
	}

	if cached, ok := s.cache.Get(key); ok {
		return cached.(*Entry).Masked(), nil
	}

	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("config entry not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load config entry", err)
	}

	s.cache.SetDefault(key, entry)
	return entry.Masked(), nil
}

// List returns all entries with secrets masked.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return maskAll(cached.([]*Entry)), nil
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list config entries", err)
	}

	s.cache.SetDefault(listCacheKey, entries)
	return maskAll(entries), nil
}

// RawValue returns the unmasked value for internal consumers (mail, etc).
// Never expose this through a handler.
func (s *Service) RawValue(ctx context.Context, key string) (string, error) {
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*Entry).Value, nil
	}

	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", apperr.NotFound("config entry not found")
		}
		return "", apperr.Wrap(apperr.KindInternal, "failed to load config entry", err)
	}

	s.cache.SetDefault(key, entry)
	return entry.Value, nil
}

// Set creates or updates an entry and logs the change. For secret entries,
// an incoming value equal to MaskValue keeps the stored value untouched so
// clients can round-trip masked reads safely.
func (s *Service) Set(ctx context.Context, actorID, key, value, category string, isSecret bool) (*Entry, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperr.Validation("config key is required")
	}

	existing, err := s.repo.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load config entry", err)
	}

	if value == MaskValue {
		if existing == nil {
			return nil, apperr.Validation("config value is required")
		}
		// Mask literal on an existing entry: keep the stored value.
		value = existing.Value
	}

	entry := &Entry{
		Key:       key,
		Value:     value,
		Category:  category,
		IsSecret:  isSecret,
		UpdatedAt: time.Now(),
	}
	if existing != nil && category == "" {
		entry.Category = existing.Category
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to save config entry", err)
	}

	s.invalidate(key)

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypeConfigChanged,
		ActorID:  actorID,
		Resource: key,
		Metadata: map[string]any{"secret": isSecret},
	})

	return entry.Masked(), nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, actorID, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperr.Validation("config key is required")
	}

	if _, err := s.repo.Get(ctx, key); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("config entry not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load config entry", err)
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete config entry", err)
	}

	s.invalidate(key)

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypeConfigChanged,
		ActorID:  actorID,
		Resource: key,
		Metadata: map[string]any{"deleted": true},
	})

	return nil
}

func (s *Service) invalidate(key string) {
	s.cache.Delete(key)
	s.cache.Delete(listCacheKey)
}

func maskAll(entries []*Entry) []*Entry {
	masked := make([]*Entry, len(entries))
	for i, e := range entries {
		masked[i] = e.Masked()
	}
	return masked
}
