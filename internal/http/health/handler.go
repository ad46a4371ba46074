// Package health serves the liveness probe.
package health

import (
	"encoding/json"
	"net/http"
)

type status struct {
	Status string `json:"status"`
}

// Handler reports process liveness. It deliberately checks no dependencies;
// Firestore or Identity Toolkit outages must not make the scheduler restart
// the process.
func Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(status{Status: "ok"})
}
