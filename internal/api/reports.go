package api

import (
	"net/http"
	"strings"
	"time"

	"location-reports/internal/domain"
	"location-reports/internal/search"
	"location-reports/internal/services"
)

// reportRequest is the create body. reportTime is kept as text so that it
// can be parsed with the same layouts the search filters accept.
type reportRequest struct {
	ReportID   int64  `json:"reportId"`
	AgentID    int64  `json:"agentId"`
	LocationID int64  `json:"locationId"`
	Status     string `json:"status"`
	ReportTime string `json:"reportTime"`
	ReportBody string `json:"reportBody"`
}

// ReportResponse is the JSON form of a report.
type ReportResponse struct {
	ReportID   int64  `json:"reportId"`
	AgentID    int64  `json:"agentId"`
	LocationID int64  `json:"locationId"`
	Status     string `json:"status"`
	ReportTime string `json:"reportTime"`
	ReportBody string `json:"reportBody"`
}

// ToReportResponse renders a report with its time in the location's offset.
func ToReportResponse(r domain.ReportWithTimeZone) ReportResponse {
	return ReportResponse{
		ReportID:   r.ID,
		AgentID:    r.AgentID,
		LocationID: r.LocationID,
		Status:     r.Status.String(),
		ReportTime: r.ReportTime.Format(time.RFC3339Nano),
		ReportBody: r.Body,
	}
}

func (h *Handler) createReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	var reportTime time.Time
	if raw := strings.TrimSpace(req.ReportTime); raw != "" {
		parsed, err := search.ParseDateTime("reportTime", raw)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		reportTime = parsed
	}

	report, err := h.reports.CreateReport(r.Context(), services.ReportInput{
		ReportID:   req.ReportID,
		AgentID:    req.AgentID,
		LocationID: req.LocationID,
		Status:     req.Status,
		ReportTime: reportTime,
		Body:       req.ReportBody,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, ToReportResponse(*report))
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reportId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	report, err := h.reports.GetReport(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ToReportResponse(*report))
}

func (h *Handler) deleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reportId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := requireEmptyBody(r); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.reports.DeleteReport(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) searchReports(w http.ResponseWriter, r *http.Request) {
	criteria, err := search.ParseValues(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	reports, err := h.reports.Search(r.Context(), criteria)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body := make([]ReportResponse, len(reports))
	for i, report := range reports {
		body[i] = ToReportResponse(report)
	}
	writeJSON(w, http.StatusOK, body)
}
