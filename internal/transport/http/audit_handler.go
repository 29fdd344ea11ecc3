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
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/complycore/complycore/internal/audit"
)

type createAuditRequest struct {
	Title         string     `json:"title" validate:"required"`
	Type          string     `json:"type" validate:"required"`
	Scope         string     `json:"scope"`
	LeadAuditorID string     `json:"leadAuditorId"`
	ScheduledFor  *time.Time `json:"scheduledFor"`
	Checklist     []string   `json:"checklist"`
}

type updateAuditRequest struct {
	Title         string     `json:"title"`
	Scope         string     `json:"scope"`
	LeadAuditorID string     `json:"leadAuditorId"`
	ScheduledFor  *time.Time `json:"scheduledFor"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type checklistResultRequest struct {
	Result string `json:"result" validate:"required"`
	Notes  string `json:"notes"`
}

// CreateAudit creates an audit and its checklist in one transaction.
// @Summary Create an audit
// @Description Creates an audit with an optional checklist
// @Tags Audits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createAuditRequest true "Request body"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /audits [post]
func (h *Handler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	var req createAuditRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	a, err := h.auditService.Create(r.Context(), GetTenantID(r.Context()), audit.CreateInput{
		Title:         req.Title,
		Type:          req.Type,
		Scope:         req.Scope,
		LeadAuditorID: req.LeadAuditorID,
		ScheduledFor:  req.ScheduledFor,
		Checklist:     req.Checklist,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{"audit": a})
}

// ListAudits lists all audits in the caller's tenant.
// @Summary List audits
// @Description Lists all audits owned by the tenant
// @Tags Audits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /audits [get]
func (h *Handler) ListAudits(w http.ResponseWriter, r *http.Request) {
	audits, err := h.auditService.List(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(audits), map[string]any{"audits": audits})
}

// GetAudit retrieves one audit in the caller's tenant.
// @Summary Get an audit
// @Description Retrieves one audit
// @Tags Audits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /audits/{id} [get]
func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	a, err := h.auditService.Get(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"audit": a})
}

// UpdateAudit modifies descriptive fields. Status changes go through
// TransitionAudit.
// @Summary Update an audit
// @Description Updates the mutable audit fields
// @Tags Audits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body updateAuditRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /audits/{id} [put]
func (h *Handler) UpdateAudit(w http.ResponseWriter, r *http.Request) {
	var req updateAuditRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	a, err := h.auditService.Update(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"), audit.UpdateInput{
		Title:         req.Title,
		Scope:         req.Scope,
		LeadAuditorID: req.LeadAuditorID,
		ScheduledFor:  req.ScheduledFor,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"audit": a})
}

// TransitionAudit moves an audit through its status workflow.
// @Summary Transition an audit
// @Description Moves an audit along its status lifecycle
// @Tags Audits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body transitionRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /audits/{id}/status [patch]
func (h *Handler) TransitionAudit(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	a, err := h.auditService.Transition(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"), audit.Status(req.Status))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	h.meter.RecordTransition(r.Context(), "audit", string(a.Status))
	respondSuccess(w, http.StatusOK, map[string]any{"audit": a})
}

// GetChecklist lists the checklist items of an audit.
// @Summary Get an audit checklist
// @Description Lists the checklist items of an audit
// @Tags Audits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /audits/{id}/checklist [get]
func (h *Handler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	items, err := h.auditService.Checklist(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(items), map[string]any{"checklist": items})
}

// RecordChecklistResult records conform/non_conform for one item.
// @Summary Record a checklist result
// @Description Stores the result and notes of a checklist item
// @Tags Audits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param itemId path string true "Checklist item ID"
// @Param request body checklistResultRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /audits/{id}/checklist/{itemId} [put]
func (h *Handler) RecordChecklistResult(w http.ResponseWriter, r *http.Request) {
	var req checklistResultRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.auditService.RecordResult(r.Context(), GetTenantID(r.Context()),
		chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), req.Result, req.Notes)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "result recorded"})
}
