package ui

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"statclinic/domain/core"
	"statclinic/domain/stationarity"
	"statclinic/internal/profiling"
	"statclinic/internal/report"
)

// AssessRequest is the body of an assessment call. Omitted fields fall
// back to the default configuration.
type AssessRequest struct {
	Source     string   `json:"source"`
	Columns    []string `json:"columns,omitempty"`
	Alpha      *float64 `json:"alpha,omitempty"`
	Regression string   `json:"regression,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`
	MaxLags    *int     `json:"max_lags,omitempty"`
}

// Params folds the request over the default configuration.
func (r AssessRequest) Params() (stationarity.Params, error) {
	params := stationarity.DefaultParams()
	if r.Alpha != nil {
		params.Alpha = *r.Alpha
	}
	if r.Regression != "" {
		reg, err := stationarity.ParseRegression(r.Regression)
		if err != nil {
			return stationarity.Params{}, err
		}
		params.Regression = reg
	}
	params.Detailed = r.Detailed
	if r.MaxLags != nil {
		params.MaxLags = *r.MaxLags
	}
	return params, params.Validate()
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAssess loads a source, assesses its columns and returns the
// persisted run records.
func (a *App) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, core.NewConfigurationError("body", err.Error()))
		return
	}
	if req.Source == "" {
		a.writeError(w, core.NewConfigurationError("source", "cannot be empty"))
		return
	}

	params, err := req.Params()
	if err != nil {
		a.writeError(w, err)
		return
	}

	frame, err := a.pipeline.AssessFrame(r.Context(), req.Source, req.Columns, params)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.log.Info().
		Str("source", frame.Source).
		Int("completed", frame.Completed()).
		Int("failed", frame.Failed()).
		Msg("assessment finished")

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"source":    frame.Source,
		"records":   frame.Records,
		"completed": frame.Completed(),
		"failed":    frame.Failed(),
	})
}

// handleListRuns returns the most recent runs, newest first.
func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := a.pipeline.ListRuns(r.Context(), queryLimit(r, 50))
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, core.NewConfigurationError("id", err.Error()))
		return
	}

	rec, err := a.pipeline.GetRun(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, rec)
}

// handleRunReport renders one persisted run as an HTML report.
func (a *App) handleRunReport(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, core.NewConfigurationError("id", err.Error()))
		return
	}

	rec, err := a.pipeline.GetRun(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.HTML(report.Markdown(rec, nil)))
}

// handleSeriesRuns returns the run history of one series.
func (a *App) handleSeriesRuns(w http.ResponseWriter, r *http.Request) {
	key, err := core.ParseSeriesKey(chi.URLParam(r, "key"))
	if err != nil {
		a.writeError(w, core.NewConfigurationError("key", err.Error()))
		return
	}

	runs, err := a.pipeline.ListRunsBySeries(r.Context(), key, queryLimit(r, 50))
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"series": key,
		"runs":   runs,
		"count":  len(runs),
	})
}

// handleProfile returns descriptive statistics for one column of a source.
func (a *App) handleProfile(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	column := r.URL.Query().Get("column")
	if source == "" || column == "" {
		a.writeError(w, core.NewConfigurationError("profile", "source and column query parameters are required"))
		return
	}

	s, err := a.catalog.LoadSeries(r.Context(), source, column)
	if err != nil {
		a.writeError(w, err)
		return
	}

	prof, err := profiling.Profile(s)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, prof)
}

func queryLimit(r *http.Request, fallback int) int {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 1000 {
		return fallback
	}
	return n
}
