package web

import (
	"net/http"
	"strconv"
	"time"
)

// handlePerf handles GET /api/perf — a timing snapshot for admins.
// Query params: minutes (lookback window, default 15), top (path count, default 10).
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	minutes := 15
	if v, err := strconv.Atoi(r.URL.Query().Get("minutes")); err == nil && v > 0 {
		minutes = v
	}
	topN := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil && v > 0 {
		topN = v
	}

	since := timeNow().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, topN))
}
