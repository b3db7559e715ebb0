// backend/src/handlers/calendar_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/username/prosper/backend/src/config"
	"github.com/username/prosper/backend/src/models"
	"github.com/username/prosper/backend/src/processors"
	"github.com/username/prosper/backend/src/services"
	"github.com/username/prosper/backend/src/utils"
)

type CalendarHandler struct {
	planner services.PlannerService
}

func NewCalendarHandler(planner services.PlannerService) *CalendarHandler {
	return &CalendarHandler{planner: planner}
}

func parseMode(r *http.Request) (models.Mode, bool) {
	mode := models.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = models.ModeLive
	}
	return mode, mode.Valid()
}

// HandleGetDayData serves GET /api/calendar/day?date=YYYY-MM-DD&mode=live
func (h *CalendarHandler) HandleGetDayData(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseMode(r)
	if !ok {
		utils.SendJSONError(w, "mode must be 'live' or 'review'", http.StatusBadRequest)
		return
	}
	date, err := processors.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		utils.SendJSONError(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	dayData, err := h.planner.GetDayData(date.Year(), date.Month(), date.Day(), mode)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.SendJSON(w, dayData, http.StatusOK)
}

// HandleGetMonthView serves GET /api/calendar/month?year=2024&month=1&mode=review
func (h *CalendarHandler) HandleGetMonthView(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseMode(r)
	if !ok {
		utils.SendJSONError(w, "mode must be 'live' or 'review'", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		utils.SendJSONError(w, "year must be an integer", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		utils.SendJSONError(w, "month must be 1-12", http.StatusBadRequest)
		return
	}

	view, err := h.planner.ComputeMonthView(year, time.Month(month), mode)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidMode) || errors.Is(err, services.ErrInvalidDate) || errors.Is(err, services.ErrViewTooFar) {
			status = http.StatusBadRequest
		}
		utils.SendJSONError(w, err.Error(), status)
		return
	}
	utils.SendJSON(w, view, http.StatusOK)
}

// HandleGetUpcoming serves GET /api/calendar/upcoming?days=7
func (h *CalendarHandler) HandleGetUpcoming(w http.ResponseWriter, r *http.Request) {
	windowDays := config.Cfg.UpcomingWindowDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 0 {
			utils.SendJSONError(w, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}
		windowDays = days
	}
	utils.SendJSON(w, h.planner.ListUpcoming(windowDays), http.StatusOK)
}
