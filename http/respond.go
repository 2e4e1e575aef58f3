package http

import (
	"encoding/json"
	"net/http"
	"time"

	"loan-advisor/metrics"
)

func writeJSON(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// decodePost enforces the POST-with-JSON-body contract every calculation
// endpoint shares. It writes the error response itself and reports
// whether the handler should continue.
func decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// observe records one completed calculation for a tool. Call it with the
// start time once the service call returns.
func observe(tool string, start time.Time, err error) {
	metrics.CalculationDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CalculationErrors.WithLabelValues(tool).Inc()
		return
	}
	metrics.CalculationsTotal.WithLabelValues(tool).Inc()
}
