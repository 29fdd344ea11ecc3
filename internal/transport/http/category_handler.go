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
)

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
	Kind string `json:"kind"`
}

// CreateCategory creates a category in the caller's tenant.
// @Summary Create a category
// @Description Creates a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body categoryRequest true "Request body"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /categories [post]
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.categoryService.Create(r.Context(), GetTenantID(r.Context()), req.Name, req.Kind)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{"category": c})
}

// ListCategories lists all categories in the caller's tenant.
// @Summary List categories
// @Description Lists all categories owned by the tenant
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(categories), map[string]any{"categories": categories})
}

// GetCategory retrieves one category in the caller's tenant.
// @Summary Get a category
// @Description Retrieves one category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [get]
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.categoryService.Get(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"category": c})
}

// UpdateCategory renames a category.
// @Summary Update a category
// @Description Renames or re-kinds a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body categoryRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [put]
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.categoryService.Update(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id"), req.Name, req.Kind)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"category": c})
}

// DeleteCategory removes a category.
// @Summary Delete a category
// @Description Deletes a category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [delete]
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categoryService.Delete(r.Context(), GetTenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
