package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cyberguard-ng/cyberguard/internal/metrics"
	"github.com/cyberguard-ng/cyberguard/internal/report"
)

type submitReportRequest struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
	Comment string `json:"comment"`
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var req submitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "BAD_JSON", "request body is not valid JSON")
		return
	}

	rep, err := s.reports.Submit(req.Kind, req.Content, req.Comment)
	switch {
	case errors.Is(err, report.ErrInvalidKind):
		badRequest(w, "INVALID_KIND", err.Error())
		return
	case errors.Is(err, report.ErrEmptyContent):
		badRequest(w, "EMPTY_CONTENT", err.Error())
		return
	case err != nil:
		s.log.Error("report submission failed", "error", err)
		internalError(w)
		return
	}

	metrics.ReportsTotal.WithLabelValues(rep.Kind).Inc()
	s.log.Info("community report submitted", "id", rep.ID, "kind", rep.Kind)
	created(w, rep)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ok(w, s.reports.List(q.Get("status"), q.Get("kind")))
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Get(chi.URLParam(r, "id"))
	if errors.Is(err, report.ErrNotFound) {
		notFound(w, "report not found")
		return
	}
	if err != nil {
		internalError(w)
		return
	}
	ok(w, rep)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "BAD_JSON", "request body is not valid JSON")
		return
	}

	rep, err := s.reports.UpdateStatus(chi.URLParam(r, "id"), req.Status)
	switch {
	case errors.Is(err, report.ErrNotFound):
		notFound(w, "report not found")
		return
	case errors.Is(err, report.ErrInvalidStatus):
		badRequest(w, "INVALID_STATUS", err.Error())
		return
	case err != nil:
		internalError(w)
		return
	}
	ok(w, rep)
}
