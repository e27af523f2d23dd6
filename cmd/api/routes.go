package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/dataset"
	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/engine"
	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/logger"
	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/metrics"
	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/types"
)

// preferredColumns is the detail-table column order; source columns
// outside this list are appended after it in source order.
var preferredColumns = []string{
	"Rep", "Scoring", "Vertical", "Company", "First Name", "Last Name",
	"Email", "Phone", "Event Outcome", "Follow Up", "Notes",
}

type dashboardResponse struct {
	types.DashboardResult
	Message   string `json:"message,omitempty"`
	DataError string `json:"data_error,omitempty"`
}

type optionsResponse struct {
	Options        map[types.Dimension][]string `json:"options"`
	Columns        []string                     `json:"columns"`
	DisplayColumns []string                     `json:"display_columns"`
	DataError      string                       `json:"data_error,omitempty"`
}

func newMux(store *dataset.Store, log *logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		log.WithRequest(r).Debug("health check")
		io.WriteString(w, "ok")
	})

	mux.HandleFunc("/api/v1/dashboard", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "dashboard")
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			metrics.RequestTotal.WithLabelValues("dashboard", "405").Inc()
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var spec types.FilterSpec
		specified := false
		if r.Method == http.MethodPost {
			err := json.NewDecoder(r.Body).Decode(&spec)
			switch {
			case err == nil:
				specified = true
			case errors.Is(err, io.EOF):
				// empty body: fall back to the full selection
			default:
				reqLog.WithError(err).Warn("bad filter spec")
				metrics.RequestTotal.WithLabelValues("dashboard", "400").Inc()
				http.Error(w, "invalid filter spec", http.StatusBadRequest)
				return
			}
		}

		ds, loadErr := store.Dataset()
		if loadErr != nil {
			reqLog.WithError(loadErr).Warn("dataset unavailable")
		}
		if !specified {
			spec = engine.FullSelection(ds)
		}

		start := time.Now()
		result := engine.Apply(ds, spec)
		metrics.ApplyDuration.Observe(time.Since(start).Seconds())

		resp := dashboardResponse{DashboardResult: result}
		switch {
		case loadErr != nil:
			resp.DataError = loadErr.Error()
			resp.Message = "Data could not be loaded. Please check the dataset file and path."
		case result.Metrics.Total == 0:
			resp.Message = "No leads match the current filter criteria."
		}

		reqLog.WithField("total", result.Metrics.Total).Info("dashboard computed")
		metrics.RequestTotal.WithLabelValues("dashboard", "200").Inc()
		writeJSON(w, reqLog, resp)
	})

	mux.HandleFunc("/api/v1/options", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "options")
		if r.Method != http.MethodGet {
			metrics.RequestTotal.WithLabelValues("options", "405").Inc()
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ds, loadErr := store.Dataset()
		resp := optionsResponse{Options: engine.Options(ds)}
		if loadErr != nil {
			reqLog.WithError(loadErr).Warn("dataset unavailable")
			resp.DataError = loadErr.Error()
		}
		if ds != nil {
			resp.Columns = ds.Columns
			resp.DisplayColumns = displayColumns(ds.Columns)
		}

		metrics.RequestTotal.WithLabelValues("options", "200").Inc()
		writeJSON(w, reqLog, resp)
	})

	mux.Handle("/metrics", metrics.Handler())

	return mux
}

// displayColumns orders the preferred columns present in the source
// first, then every remaining source column untouched.
func displayColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	preferred := make(map[string]bool, len(preferredColumns))
	out := []string{}
	for _, c := range preferredColumns {
		preferred[c] = true
		if present[c] {
			out = append(out, c)
		}
	}
	for _, c := range columns {
		if !preferred[c] {
			out = append(out, c)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, reqLog *logrus.Entry, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		reqLog.WithError(err).Error("failed to write response")
	}
}
