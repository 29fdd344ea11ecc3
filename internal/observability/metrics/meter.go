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

package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Config holds metrics configuration
type Config struct {
	Enabled bool
}

// Meter carries the instruments this service records on. A disabled config
// still yields working no-op instruments, so call sites never nil-check.
type Meter struct {
	requestDuration metric.Float64Histogram
	authFailures    metric.Int64Counter
	transitions     metric.Int64Counter
}

// New creates the service meter and its instruments.
func New(ctx context.Context, cfg Config, serviceName string) (*Meter, error) {
	name := serviceName
	if !cfg.Enabled {
		name = "noop"
	}
	// The global meter provider is configured by the OTel SDK from
	// environment variables; without one this degrades to no-op.
	meter := otel.Meter(name)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	authFailures, err := meter.Int64Counter(
		"auth.failures",
		metric.WithDescription("Rejected authentication and authorization attempts"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth failure counter: %w", err)
	}

	transitions, err := meter.Int64Counter(
		"compliance.record.transitions",
		metric.WithDescription("Status transitions of audits, documents, and non-conformities"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transition counter: %w", err)
	}

	return &Meter{
		requestDuration: requestDuration,
		authFailures:    authFailures,
		transitions:     transitions,
	}, nil
}

// RecordRequest records one served HTTP request.
func (m *Meter) RecordRequest(ctx context.Context, method, path string, status int, durationMs float64) {
	m.requestDuration.Record(ctx, durationMs,
		metric.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", path),
			attribute.Int("http.response.status_code", status),
		),
	)
	if status == 401 || status == 403 {
		m.authFailures.Add(ctx, 1,
			metric.WithAttributes(attribute.Int("http.response.status_code", status)),
		)
	}
}

// RecordTransition counts a status change on a compliance record.
func (m *Meter) RecordTransition(ctx context.Context, recordType, target string) {
	m.transitions.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("record.type", recordType),
			attribute.String("record.status", target),
		),
	)
}
