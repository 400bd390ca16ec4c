package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/cyberguard-ng/cyberguard/internal/audit"
	"github.com/cyberguard-ng/cyberguard/internal/classifier"
	"github.com/cyberguard-ng/cyberguard/internal/metrics"
	"github.com/cyberguard-ng/cyberguard/internal/ruledb"
)

// checkResponse is the flat verdict payload for the handset-facing
// endpoints.
type checkResponse struct {
	Kind string `json:"kind"`
	classifier.Verdict
}

// handleCheck classifies exactly one of ?code= (USSD) or ?sms= (message).
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code, hasCode := q["code"]
	sms, hasSMS := q["sms"]

	if hasCode == hasSMS {
		badRequest(w, "BAD_QUERY", "provide exactly one of code= or sms=")
		return
	}

	var (
		kind  string
		input string
		v     classifier.Verdict
	)
	start := time.Now()
	if hasCode {
		kind = audit.KindUSSD
		input = first(code)
		v = s.ussd.Classify(input)
	} else {
		kind = audit.KindSMS
		input = first(sms)
		v = s.sms.Classify(input)
	}
	elapsed := time.Since(start)

	metrics.ChecksTotal.WithLabelValues(kind, string(v.Tier)).Inc()
	metrics.CheckDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if v.NeedsEscalation {
		metrics.EscalationsTotal.Inc()
	}
	s.emitter.Emit(r.Context(), audit.NewEvent(kind, input, v, elapsed, s.previewLen))

	writeJSON(w, http.StatusOK, checkResponse{Kind: kind, Verdict: v})
}

// handleQuickScan runs the cheap SMS pre-filter only.
func (s *Server) handleQuickScan(w http.ResponseWriter, r *http.Request) {
	msg, has := r.URL.Query()["sms"]
	if !has {
		badRequest(w, "BAD_QUERY", "sms= query parameter is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"suspicious": s.sms.QuickScan(first(msg))})
}

type statsResponse struct {
	Rules         ruledb.Counts `json:"rules"`
	RulesPath     string        `json:"rules_path,omitempty"`
	ReloadsOK     uint64        `json:"reloads_ok"`
	ReloadsFailed uint64        `json:"reloads_failed"`
	Reports       any           `json:"reports"`
	UptimeSeconds int64         `json:"uptime_seconds"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	okCount, failed := s.rules.ReloadStats()
	writeJSON(w, http.StatusOK, statsResponse{
		Rules:         s.rules.Current().Counts(),
		RulesPath:     s.rules.Path(),
		ReloadsOK:     okCount,
		ReloadsFailed: failed,
		Reports:       s.reports.Counts(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "ok",
		"service":       "cyberguard",
		"rules_version": s.rules.Current().Version,
	})
}

// handleReload re-reads the ruleset from disk. A failed reload keeps the
// active ruleset and reports the error.
func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	if err := s.rules.Reload(); err != nil {
		metrics.RuleReloadsTotal.WithLabelValues("failure").Inc()
		s.log.Error("manual ruleset reload failed", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}
	metrics.RuleReloadsTotal.WithLabelValues("success").Inc()
	db := s.rules.Current()
	s.log.Info("ruleset reloaded", "version", db.Version)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "ok",
		"rules_version": db.Version,
	})
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}
