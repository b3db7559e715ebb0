// backend/src/handlers/settlement_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/username/prosper/backend/src/services"
	"github.com/username/prosper/backend/src/utils"
)

type SettlementHandler struct {
	planner services.PlannerService
}

func NewSettlementHandler(planner services.PlannerService) *SettlementHandler {
	return &SettlementHandler{planner: planner}
}

type occurrenceRequest struct {
	DateKey       string `json:"dateKey"`
	TransactionID int64  `json:"transactionId"`
	// AmountPaid is decoded as a string so a non-numeric value is rejected
	// locally instead of silently becoming zero.
	AmountPaid string `json:"amountPaid,omitempty"`
}

// HandleRecordPayment serves POST /api/occurrences/pay
func (h *SettlementHandler) HandleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req occurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	amount, err := decimal.NewFromString(req.AmountPaid)
	if err != nil {
		utils.SendJSONError(w, "amountPaid must be a number", http.StatusBadRequest)
		return
	}
	if err := h.planner.RecordPayment(req.DateKey, req.TransactionID, amount); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnpay serves POST /api/occurrences/unpay
func (h *SettlementHandler) HandleUnpay(w http.ResponseWriter, r *http.Request) {
	var req occurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.planner.Unpay(req.DateKey, req.TransactionID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleSkip serves POST /api/occurrences/toggle-skip
func (h *SettlementHandler) HandleToggleSkip(w http.ResponseWriter, r *http.Request) {
	var req occurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.planner.ToggleSkip(req.DateKey, req.TransactionID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SettlementHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrInvalidDate) {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.SendJSONError(w, "Failed to update occurrence state", http.StatusInternalServerError)
}
