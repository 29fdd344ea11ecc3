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

package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/complycore/complycore/internal/auditlog"
	"github.com/complycore/complycore/internal/observability/logger"
	"github.com/complycore/complycore/internal/rbac"
)

// Tenant Isolation Principles:
// 1. Tenant context is derived EXCLUSIVELY from verified token claims.
// 2. X-Tenant-ID or similar headers are never consulted.
// 3. Cross-tenant lookups answer NotFound, never Forbidden, so record
//    existence in other tenants is not observable.

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			slog.InfoContext(r.Context(), "http_request_start",
				logger.RequestID(middleware.GetReqID(r.Context())),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.RemoteAddr(r.RemoteAddr),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.InfoContext(r.Context(), "http_request_end",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.UserAgent(r.UserAgent()),
					logger.StatusCode(ww.Status()),
					logger.Duration(time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// MetricsMiddleware records per-request duration and counts rejected
// authentication and authorization attempts.
func (h *Handler) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.meter.RecordRequest(r.Context(), r.Method, r.URL.Path, ww.Status(),
			float64(time.Since(start).Milliseconds()))
	})
}

// Authenticate validates the Bearer token and attaches claims to context.
// The stored account is re-checked on every request so deactivation takes
// effect immediately, even while the token is still cryptographically valid.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := h.tokenManager.VerifyAccess(tokenString)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if err := h.identityService.CheckLiveness(r.Context(), claims.UserID); err != nil {
			respondAppError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RequireRole gates a route on an allow-list of roles. super_admin passes
// every gate. Role comes from token claims; a demotion is picked up within
// the access token TTL.
func (h *Handler) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !rbac.Allowed(claims.Role, roles...) {
				h.auditLogger.Log(r.Context(), auditlog.Event{
					Type:     auditlog.TypeRoleDenied,
					TenantID: claims.TenantID,
					ActorID:  claims.UserID,
					Resource: r.URL.Path,
					Metadata: map[string]any{"role": claims.Role},
				})
				respondError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
