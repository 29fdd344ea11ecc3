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

// @title ComplyCore API
// @version 1.0.0
// @description Multi-tenant compliance management backend

// @contact.name API Support
// @contact.email support@complycore.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/complycore/complycore/internal/audit"
	"github.com/complycore/complycore/internal/auditlog"
	"github.com/complycore/complycore/internal/category"
	"github.com/complycore/complycore/internal/document"
	"github.com/complycore/complycore/internal/identity"
	"github.com/complycore/complycore/internal/kpi"
	"github.com/complycore/complycore/internal/mail"
	"github.com/complycore/complycore/internal/nonconformity"
	"github.com/complycore/complycore/internal/observability/metrics"
	"github.com/complycore/complycore/internal/rbac"
	"github.com/complycore/complycore/internal/risk"
	"github.com/complycore/complycore/internal/sysconfig"
	"github.com/complycore/complycore/internal/tenant"
	"github.com/complycore/complycore/internal/token"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	identityService      *identity.Service
	tenantService        *tenant.Service
	auditService         *audit.Service
	documentService      *document.Service
	nonconformityService *nonconformity.Service
	kpiService           *kpi.Service
	riskService          *risk.Service
	categoryService      *category.Service
	configService        *sysconfig.Service
	tokenManager         *token.Manager
	auditLogger          auditlog.Logger
	mailSender           mail.Sender
	meter                *metrics.Meter
	validate             *validator.Validate
}

// NewHandler creates a new HTTP handler
func NewHandler(
	identityService *identity.Service,
	tenantService *tenant.Service,
	auditService *audit.Service,
	documentService *document.Service,
	nonconformityService *nonconformity.Service,
	kpiService *kpi.Service,
	riskService *risk.Service,
	categoryService *category.Service,
	configService *sysconfig.Service,
	tokenManager *token.Manager,
	auditLogger auditlog.Logger,
	mailSender mail.Sender,
	meter *metrics.Meter,
) *Handler {
	return &Handler{
		identityService:      identityService,
		tenantService:        tenantService,
		auditService:         auditService,
		documentService:      documentService,
		nonconformityService: nonconformityService,
		kpiService:           kpiService,
		riskService:          riskService,
		categoryService:      categoryService,
		configService:        configService,
		tokenManager:         tokenManager,
		auditLogger:          auditLogger,
		mailSender:           mailSender,
		meter:                meter,
		validate:             validator.New(),
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(h.MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// Public authentication endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/refresh", h.Refresh)
			r.Post("/invite/accept", h.AcceptInvite)
			r.Post("/verify-email", h.VerifyEmail)

			r.Group(func(r chi.Router) {
				r.Use(h.Authenticate)
				r.Get("/me", h.Me)
				r.Post("/change-password", h.ChangePassword)
			})
		})

		// Everything below requires a verified token and a live account.
		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)

			r.Route("/users", func(r chi.Router) {
				r.Use(h.RequireRole(rbac.RoleTenantAdmin))
				r.Get("/", h.ListUsers)
				r.Post("/invite", h.InviteUser)
				r.Get("/{id}", h.GetUser)
				r.Put("/{id}", h.UpdateUser)
				r.Delete("/{id}", h.DeactivateUser)
			})

			// Platform administration. RequireRole with an empty allow-list
			// admits super_admin only.
			r.Route("/tenants", func(r chi.Router) {
				r.Use(h.RequireRole())
				r.Get("/", h.ListTenants)
				r.Get("/{id}", h.GetTenant)
				r.Put("/{id}", h.UpdateTenant)
				r.Delete("/{id}", h.DeleteTenant)
			})

			r.Route("/audits", func(r chi.Router) {
				r.Get("/", h.ListAudits)
				r.Get("/{id}", h.GetAudit)
				r.Get("/{id}/checklist", h.GetChecklist)

				r.Group(func(r chi.Router) {
					r.Use(h.RequireRole(rbac.RoleTenantAdmin, rbac.RoleAuditor))
					r.Post("/", h.CreateAudit)
					r.Put("/{id}", h.UpdateAudit)
					r.Patch("/{id}/status", h.TransitionAudit)
					r.Put("/{id}/checklist/{itemId}", h.RecordChecklistResult)
				})
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", h.ListDocuments)
				r.Get("/{id}", h.GetDocument)

				r.Group(func(r chi.Router) {
					r.Use(h.RequireRole(rbac.RoleTenantAdmin, rbac.RoleMember))
					r.Post("/", h.CreateDocument)
					r.Put("/{id}", h.UpdateDocument)
				})

				r.Group(func(r chi.Router) {
					r.Use(h.RequireRole(rbac.RoleTenantAdmin))
					r.Patch("/{id}/status", h.TransitionDocument)
					r.Delete("/{id}", h.DeleteDocument)
				})
			})

			r.Route("/nonconformities", func(r chi.Router) {
				r.Get("/", h.ListNonConformities)
				r.Get("/{id}", h.GetNonConformity)

				r.Group(func(r chi.Router) {
					r.Use(h.RequireRole(rbac.RoleTenantAdmin, rbac.RoleAuditor))
					r.Post("/", h.CreateNonConformity)
					r.Put("/{id}", h.UpdateNonConformity)
					r.Patch("/{id}/status", h.TransitionNonConformity)
				})
			})

			r.Route("/kpis", func(r chi.Router) {
				r.Get("/", h.ListKPIs)
				r.Get("/{id}", h.GetKPI)
				r.With(h.RequireRole(rbac.RoleTenantAdmin, rbac.RoleMember)).
					Post("/{id}/measure", h.MeasureKPI)

				r.Group(func(r chi.Router) {
					r.Use(h.RequireRole(rbac.RoleTenantAdmin))
					r.Post("/", h.CreateKPI)
					r.Put("/{id}", h.UpdateKPI)
					r.Delete("/{id}", h.DeleteKPI)
				})
			})

			r.Route("/risks", func(r chi.Router) {
				r.Get("/", h.ListRisks)
				r.Get("/{id}", h.GetRisk)

				r.Group(func(r chi.Router) {
					r.Use(h.RequireRole(rbac.RoleTenantAdmin, rbac.RoleAuditor))
					r.Post("/", h.CreateRisk)
					r.Put("/{id}", h.UpdateRisk)
					r.Delete("/{id}", h.DeleteRisk)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.ListCategories)
				r.Get("/{id}", h.GetCategory)

				r.Group(func(r chi.Router) {
					r.Use(h.RequireRole(rbac.RoleTenantAdmin))
					r.Post("/", h.CreateCategory)
					r.Put("/{id}", h.UpdateCategory)
					r.Delete("/{id}", h.DeleteCategory)
				})
			})

			r.Route("/config", func(r chi.Router) {
				r.Use(h.RequireRole())
				r.Get("/", h.ListConfig)
				r.Get("/{key}", h.GetConfig)
				r.Put("/{key}", h.SetConfig)
				r.Delete("/{key}", h.DeleteConfig)
			})
		})
	})

	return r
}

// HealthCheck returns service health status
// @Summary Health check
// @Description Reports whether the service is up
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
