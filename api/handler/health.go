package handler

import (
	"net/http"
	"os"
	"time"
)

type CheckResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // up, stale, down
	Details string `json:"details,omitempty"`
}

// staleAfter is how old the status file may grow before the daemon is
// considered stale. The daemon rewrites the file every few seconds when
// healthy, so a couple of minutes is generous.
const staleAfter = 2 * time.Minute

// Health reports whether the daemon's shared files look alive.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	checks := []CheckResult{
		h.checkStatusFile(),
		h.checkCommandFile(),
		h.checkLog(),
	}

	status := "healthy"
	for _, c := range checks {
		if c.Status != "up" {
			status = "degraded"
			break
		}
	}

	writeResult(w, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

func (h *Handler) checkStatusFile() CheckResult {
	info, err := os.Stat(h.cfg.StatusFile)
	if err != nil {
		return CheckResult{Name: "status_file", Status: "down", Details: err.Error()}
	}
	if age := time.Since(info.ModTime()); age > staleAfter {
		return CheckResult{Name: "status_file", Status: "stale", Details: "not rewritten for " + age.Truncate(time.Second).String()}
	}
	return CheckResult{Name: "status_file", Status: "up"}
}

func (h *Handler) checkCommandFile() CheckResult {
	if _, err := os.Stat(h.cfg.CommandFile); err != nil {
		return CheckResult{Name: "command_file", Status: "down", Details: err.Error()}
	}
	return CheckResult{Name: "command_file", Status: "up"}
}

func (h *Handler) checkLog() CheckResult {
	n := len(h.store.RecentLog())
	if n == 0 {
		return CheckResult{Name: "log", Status: "stale", Details: "no log lines seen yet"}
	}
	return CheckResult{Name: "log", Status: "up"}
}
