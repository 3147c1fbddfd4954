package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/bizcal/internal/planner"
	"github.com/Simplici0/bizcal/internal/presets"
	"github.com/Simplici0/bizcal/internal/report"
)

const maxBodyBytes = 1 << 20

// requestError is a rejected request with the reason reported to metrics and clients.
type requestError struct {
	reason string
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(reason string, err error) error {
	return &requestError{reason: reason, err: err}
}

// inputReason maps a document validation error to a stable reason label.
func inputReason(err error) string {
	var cond planner.Condition
	switch {
	case errors.As(err, &cond):
		return string(cond)
	case errors.Is(err, planner.ErrNotFinite):
		return "not_finite"
	case errors.Is(err, planner.ErrUnknownFunnel), errors.Is(err, planner.ErrMixedFunnel):
		return "invalid_funnel"
	default:
		return "invalid_input"
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handlePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.planFromBody(w, r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, plan)
}

func (s *server) handlePlanBrief(w http.ResponseWriter, r *http.Request) {
	plan, err := s.planFromBody(w, r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.Brief(plan))
}

func (s *server) handlePlanText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeRequestError(w, badRequest("malformed_form", errors.New("invalid form")))
		return
	}

	doc, err := parsePlanForm(r)
	if err != nil {
		s.writeRequestError(w, badRequest("malformed_form", err))
		return
	}

	plan, err := s.compute(r, doc)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.Text(plan)))
}

func (s *server) handlePresetList(w http.ResponseWriter, r *http.Request) {
	list, err := s.presets.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list presets")
		s.writeError(w, http.StatusInternalServerError, "failed to list presets", "")
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *server) handlePresetPlan(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))

	preset, err := s.presets.Get(r.Context(), slug)
	if errors.Is(err, presets.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error(), "")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("slug", slug).Msg("failed to load preset")
		s.writeError(w, http.StatusInternalServerError, "failed to load preset", "")
		return
	}

	plan, err := s.compute(r, preset.Assumptions)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, plan)
}

func (s *server) planFromBody(w http.ResponseWriter, r *http.Request) (planner.Plan, error) {
	var doc planner.AssumptionsDoc
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return planner.Plan{}, badRequest("malformed_body", fmt.Errorf("invalid request body: %w", err))
	}
	return s.compute(r, doc)
}

// compute resolves mode and daily basis from the query string and runs the engine.
func (s *server) compute(r *http.Request, doc planner.AssumptionsDoc) (planner.Plan, error) {
	query := r.URL.Query()

	rawMode := query.Get("mode")
	if rawMode == "" {
		rawMode = string(s.defaults.mode)
	}
	mode, err := planner.ParseMode(rawMode)
	if err != nil {
		return planner.Plan{}, badRequest("unknown_mode", err)
	}

	basis := s.defaults.basis
	if raw := query.Get("daily_basis"); raw != "" {
		basis, err = planner.ParseDailyBasis(raw)
		if err != nil {
			return planner.Plan{}, badRequest("unknown_daily_basis", err)
		}
	}

	a, err := doc.Assumptions()
	if err != nil {
		return planner.Plan{}, badRequest(inputReason(err), err)
	}

	plan := planner.Compute(a, mode, planner.Options{DailyBasis: basis})
	s.metrics.ObservePlan(plan)
	return plan, nil
}

func (s *server) writeRequestError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	if !errors.As(err, &reqErr) {
		s.log.Error().Err(err).Msg("unexpected plan error")
		s.writeError(w, http.StatusInternalServerError, "failed to compute plan", "")
		return
	}

	s.metrics.InvalidRequests.WithLabelValues(reqErr.reason).Inc()
	s.log.Debug().Err(err).Str("reason", reqErr.reason).Msg("rejected plan request")
	s.writeError(w, http.StatusBadRequest, err.Error(), reqErr.reason)
}

func (s *server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, message, reason string) {
	body := map[string]string{"error": message}
	if reason != "" {
		body["reason"] = reason
	}
	s.writeJSON(w, status, body)
}
