// backend/src/handlers/vault_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/username/prosper/backend/src/models"
	"github.com/username/prosper/backend/src/security/validation"
	"github.com/username/prosper/backend/src/services"
	"github.com/username/prosper/backend/src/utils"
)

type VaultHandler struct {
	planner services.PlannerService
}

func NewVaultHandler(planner services.PlannerService) *VaultHandler {
	return &VaultHandler{planner: planner}
}

type orderRequest struct {
	Order []int64 `json:"order"`
}

// HandleListVaults serves GET /api/vaults
func (h *VaultHandler) HandleListVaults(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, map[string]any{
		"vaults": h.planner.ListVaults(),
		"total":  h.planner.VaultTotal(),
	}, http.StatusOK)
}

// HandleSaveVault serves POST /api/vaults (create) and PUT /api/vaults/{id}
func (h *VaultHandler) HandleSaveVault(w http.ResponseWriter, r *http.Request) {
	var v models.Vault
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if idStr := chi.URLParam(r, "id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			utils.SendJSONError(w, "Invalid vault id", http.StatusBadRequest)
			return
		}
		v.ID = id
	}
	saved, err := h.planner.SaveVault(v)
	if err != nil {
		writeValidationError(w, err, "Failed to save vault")
		return
	}
	utils.SendJSON(w, saved, http.StatusOK)
}

// HandleDeleteVault serves DELETE /api/vaults/{id}
func (h *VaultHandler) HandleDeleteVault(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid vault id", http.StatusBadRequest)
		return
	}
	if err := h.planner.DeleteVault(id); err != nil {
		utils.SendJSONError(w, "Failed to delete vault", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorderVaults serves PUT /api/vaults/order
func (h *VaultHandler) HandleReorderVaults(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.planner.ReorderVaults(req.Order); err != nil {
		utils.SendJSONError(w, "Failed to reorder vaults", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListJars serves GET /api/jars
func (h *VaultHandler) HandleListJars(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, h.planner.ListJars(), http.StatusOK)
}

// HandleSaveJar serves POST /api/jars (create) and PUT /api/jars/{id}
func (h *VaultHandler) HandleSaveJar(w http.ResponseWriter, r *http.Request) {
	var j models.Jar
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if idStr := chi.URLParam(r, "id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			utils.SendJSONError(w, "Invalid jar id", http.StatusBadRequest)
			return
		}
		j.ID = id
	}
	saved, err := h.planner.SaveJar(j)
	if err != nil {
		writeValidationError(w, err, "Failed to save jar")
		return
	}
	utils.SendJSON(w, saved, http.StatusOK)
}

// HandleDeleteJar serves DELETE /api/jars/{id}
func (h *VaultHandler) HandleDeleteJar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid jar id", http.StatusBadRequest)
		return
	}
	if err := h.planner.DeleteJar(id); err != nil {
		utils.SendJSONError(w, "Failed to delete jar", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorderJars serves PUT /api/jars/order
func (h *VaultHandler) HandleReorderJars(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.planner.ReorderJars(req.Order); err != nil {
		utils.SendJSONError(w, "Failed to reorder jars", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeValidationError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, validation.ErrValidationFailed) {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.SendJSONError(w, fallback, http.StatusInternalServerError)
}
