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

	"github.com/go-chi/chi/v5"

	"github.com/complycore/complycore/internal/document"
)

type createDocumentRequest struct {
	Code       string `json:"code" validate:"required"`
	Title      string `json:"title" validate:"required"`
	CategoryID string `json:"categoryId"`
	Content    string `json:"content"`
}

type updateDocumentRequest struct {
	Title      string `json:"title"`
	CategoryID string `json:"categoryId"`
	Content    string `json:"content"`
}

// CreateDocument creates a document in draft state.
// @Summary Create a document
// @Description Creates a draft document with a tenant-unique code
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createDocumentRequest true "Request body"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /documents [post]
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	doc, err := h.documentService.Create(r.Context(), GetTenantID(r.Context()), GetUserID(r.Context()), document.CreateInput{
		Code:       req.Code,
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Content:    req.Content,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{"document": doc})
}

// ListDocuments lists all documents in the caller's tenant.
// @Summary List documents
// @Description Lists all documents owned by the tenant
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documentService.List(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(docs), map[string]any{"documents": docs})
}

// GetDocument retrieves one document in the caller's tenant.
// @Summary Get a document
// @Description Retrieves one document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /documents/{id} [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documentService.Get(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"document": doc})
}

// UpdateDocument edits a document. Editing an approved document starts a
// new revision in draft.
// @Summary Update a document
// @Description Updates content; editing an approved document opens a new draft version
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body updateDocumentRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /documents/{id} [put]
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req updateDocumentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	doc, err := h.documentService.Update(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"), document.UpdateInput{
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Content:    req.Content,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"document": doc})
}

// TransitionDocument moves a document through the approval workflow.
// Approval stamps the approver from the caller's verified identity.
// @Summary Transition a document
// @Description Moves a document through the approval workflow
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body transitionRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /documents/{id}/status [patch]
func (h *Handler) TransitionDocument(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	doc, err := h.documentService.Transition(r.Context(), GetTenantID(r.Context()),
		chi.URLParam(r, "id"), GetUserID(r.Context()), document.Status(req.Status))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	h.meter.RecordTransition(r.Context(), "document", string(doc.Status))
	respondSuccess(w, http.StatusOK, map[string]any{"document": doc})
}

// DeleteDocument removes a document.
// @Summary Delete a document
// @Description Deletes a document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /documents/{id} [delete]
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.documentService.Delete(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "document deleted"})
}
