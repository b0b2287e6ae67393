package handlers

import (
	"fmt"
	"net/http"
	"time"

	"labo-backend/internal/services"
	"labo-backend/internal/timeutil"
	"labo-backend/pkg/utils"
)

// ReportHandler serves the weekly PDF and the iCalendar exports.
type ReportHandler struct {
	reports *services.ReportService
	exports *services.ExportService
}

func NewReportHandler(reports *services.ReportService, exports *services.ExportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// WeekPDF handles GET /api/reports/week.pdf?date=2026-09-07. Defaults to the
// current week.
func (h *ReportHandler) WeekPDF(w http.ResponseWriter, r *http.Request) {
	anchor := timeutil.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation(timeutil.DateLayout, d, timeutil.Paris)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	data, err := h.reports.GetWeekData(r.Context(), anchor)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	pdf, err := h.reports.GenerateWeekPDF(data)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("planning-%s.pdf", data.WeekStart.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// ExportICS handles GET /api/calendrier/export.ics?from=...&to=... (both
// YYYY-MM-DD, defaulting to a year around now).
func (h *ReportHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	now := timeutil.Now()
	from := now.AddDate(0, -6, 0)
	to := now.AddDate(0, 6, 0)

	if q := r.URL.Query().Get("from"); q != "" {
		parsed, err := time.ParseInLocation(timeutil.DateLayout, q, timeutil.Paris)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if q := r.URL.Query().Get("to"); q != "" {
		parsed, err := time.ParseInLocation(timeutil.DateLayout, q, timeutil.Paris)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}
		to = parsed
	}

	ics, err := h.exports.ICS(r.Context(), from, to)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendrier.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ics))
}
