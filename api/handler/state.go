package handler

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"nagapi/api/model"
)

// GetState returns the full published snapshot.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.store.Current())
}

// GetHost returns one host with its services and downtimes.
func (h *Handler) GetHost(w http.ResponseWriter, r *http.Request) {
	host, _, err := h.store.Resolve(chi.URLParam(r, "host"), "")
	if err != nil {
		writeFailure(w, http.StatusNotFound, "host not found")
		return
	}
	writeResult(w, host)
}

// GetService returns one service on a host.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	_, svc, err := h.store.Resolve(chi.URLParam(r, "host"), chi.URLParam(r, "service"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, "host or service not found")
		return
	}
	writeResult(w, svc)
}

// ListDowntimes returns every scheduled downtime, ordered by ID.
func (h *Handler) ListDowntimes(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	out := make([]*model.Downtime, 0, len(snap.Downtimes))
	for _, d := range snap.Downtimes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeResult(w, out)
}

// GetDowntime returns one downtime by ID via the snapshot-wide index.
func (h *Handler) GetDowntime(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "downtime id must be an integer")
		return
	}
	d, err := h.store.FindDowntime(id)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Downtime ID does not seem valid")
		return
	}
	writeResult(w, d)
}

// GetLog returns the most recent daemon log lines, oldest first. ?lines=N
// limits the response to the newest N.
func (h *Handler) GetLog(w http.ResponseWriter, r *http.Request) {
	lines := h.store.RecentLog()

	if v := r.URL.Query().Get("lines"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeFailure(w, http.StatusBadRequest, "lines must be a non-negative integer")
			return
		}
		if n < len(lines) {
			lines = lines[len(lines)-n:]
		}
	}
	writeResult(w, lines)
}
