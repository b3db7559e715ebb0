// backend/src/handlers/backup_handler.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/username/prosper/backend/src/config"
	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/services"
	"github.com/username/prosper/backend/src/utils"
)

type BackupHandler struct {
	planner services.PlannerService
}

func NewBackupHandler(planner services.PlannerService) *BackupHandler {
	return &BackupHandler{planner: planner}
}

// HandleExport serves GET /api/backup/export
func (h *BackupHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, h.planner.Export(), http.StatusOK)
}

// HandleImport serves POST /api/backup/import. Parsing is all-or-nothing:
// a bad payload leaves the current state untouched and is reported back.
func (h *BackupHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, config.Cfg.MaxImportSizeBytes+1))
	if err != nil {
		utils.SendJSONError(w, "Failed to read import payload", http.StatusBadRequest)
		return
	}
	if int64(len(payload)) > config.Cfg.MaxImportSizeBytes {
		utils.SendJSONError(w, "Import payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	if err := h.planner.Import(payload); err != nil {
		if errors.Is(err, services.ErrMalformedImport) {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.FromContext(r.Context()).Error("Import failed", "error", err)
		utils.SendJSONError(w, "Failed to import backup", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleClearAll serves POST /api/backup/clear
func (h *BackupHandler) HandleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.planner.ClearAll(); err != nil {
		logger.FromContext(r.Context()).Error("Clear-all failed", "error", err)
		utils.SendJSONError(w, "Failed to clear data", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
