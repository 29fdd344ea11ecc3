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

type setConfigRequest struct {
	Value    string `json:"value" validate:"required"`
	Category string `json:"category"`
	IsSecret bool   `json:"isSecret"`
}

// ListConfig lists all config entries. Secret values come back masked.
// @Summary List config entries
// @Description Lists all entries with secret values masked
// @Tags Config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /config [get]
func (h *Handler) ListConfig(w http.ResponseWriter, r *http.Request) {
	entries, err := h.configService.List(r.Context())
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondList(w, http.StatusOK, len(entries), map[string]any{"config": entries})
}

// GetConfig retrieves one entry, masked when secret.
// @Summary Get a config entry
// @Description Retrieves one entry, masked when secret
// @Tags Config
// @Produce json
// @Security BearerAuth
// @Param key path string true "Config key"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /config/{key} [get]
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	entry, err := h.configService.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"config": entry})
}

// SetConfig creates or updates an entry. A value equal to the mask literal
// leaves the stored value unchanged, so round-tripping a masked read is
// safe.
// @Summary Set a config entry
// @Description Creates or updates an entry; writing the mask literal keeps the stored value
// @Tags Config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Config key"
// @Param request body setConfigRequest true "Request body"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /config/{key} [put]
func (h *Handler) SetConfig(w http.ResponseWriter, r *http.Request) {
	var req setConfigRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.configService.Set(r.Context(), GetUserID(r.Context()),
		chi.URLParam(r, "key"), req.Value, req.Category, req.IsSecret)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"config": entry})
}

// DeleteConfig removes an entry.
// @Summary Delete a config entry
// @Description Removes an entry
// @Tags Config
// @Produce json
// @Security BearerAuth
// @Param key path string true "Config key"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /config/{key} [delete]
func (h *Handler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	if err := h.configService.Delete(r.Context(), GetUserID(r.Context()), chi.URLParam(r, "key")); err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "config entry deleted"})
}
