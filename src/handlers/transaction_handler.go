// backend/src/handlers/transaction_handler.go
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

type TransactionHandler struct {
	planner services.PlannerService
}

func NewTransactionHandler(planner services.PlannerService) *TransactionHandler {
	return &TransactionHandler{planner: planner}
}

// HandleListTransactions serves GET /api/transactions?filter=active&search=rent
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := models.TransactionListFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = models.FilterActive
	}
	if filter != models.FilterActive && filter != models.FilterCompleted {
		utils.SendJSONError(w, "filter must be 'active' or 'completed'", http.StatusBadRequest)
		return
	}
	search := r.URL.Query().Get("search")
	utils.SendJSON(w, h.planner.ListTransactions(filter, search), http.StatusOK)
}

// HandleAddTransaction serves POST /api/transactions
func (h *TransactionHandler) HandleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	saved, err := h.planner.AddTransaction(t)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.SendJSON(w, saved, http.StatusCreated)
}

// HandleUpdateTransaction serves PUT /api/transactions/{id}
func (h *TransactionHandler) HandleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}
	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	t.ID = id
	saved, err := h.planner.UpdateTransaction(t)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.SendJSON(w, saved, http.StatusOK)
}

// HandleDeleteTransaction serves DELETE /api/transactions/{id}
func (h *TransactionHandler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}
	if err := h.planner.DeleteTransaction(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCopyTransaction serves POST /api/transactions/{id}/copy
func (h *TransactionHandler) HandleCopyTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}
	dup, err := h.planner.CopyTransaction(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if dup.ID == 0 {
		// Stale id: nothing was copied.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	utils.SendJSON(w, dup, http.StatusCreated)
}

func (h *TransactionHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, validation.ErrValidationFailed) {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.SendJSONError(w, "Failed to save transaction", http.StatusInternalServerError)
}
