package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"nagapi/api/command"
	"nagapi/api/downtime"
	"nagapi/api/model"
)

type scheduleRequest struct {
	Host     string `json:"host"`
	Service  string `json:"service"`
	Duration int64  `json:"duration"` // seconds
	Author   string `json:"author"`
	Comment  string `json:"comment"`
}

// ScheduleDowntime schedules a fixed downtime for a host or a service.
func (h *Handler) ScheduleDowntime(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Host == "" {
		writeFailure(w, http.StatusBadRequest, "host is required")
		return
	}
	if req.Author == "" {
		req.Author = "nagapi"
	}
	if req.Comment == "" {
		req.Comment = "scheduled via nagapi"
	}

	err := h.downtimes.Schedule(req.Host, req.Service, req.Duration, req.Author, req.Comment)
	switch {
	case err == nil:
		target := req.Host
		if req.Service != "" {
			target = req.Host + "/" + req.Service
		}
		writeResult(w, fmt.Sprintf("scheduled %d second downtime for %s", req.Duration, target))
	case errors.Is(err, downtime.ErrInvalidDuration):
		writeFailure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeFailure(w, http.StatusNotFound, "host or service not found")
	default:
		writeFailure(w, http.StatusBadGateway, "command delivery failed: "+err.Error())
	}
}

type cancelRequest struct {
	DowntimeID int    `json:"downtime_id"`
	Host       string `json:"host"`
	Service    string `json:"service"`
}

// CancelDowntime cancels one downtime by ID, or every downtime attached to
// a host or service. The three non-success outcomes stay distinguishable:
// nothing matched, some cancels failed, all cancels failed.
func (h *Handler) CancelDowntime(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DowntimeID <= 0 && req.Host == "" {
		writeFailure(w, http.StatusBadRequest, "downtime_id or host is required")
		return
	}

	n, err := h.downtimes.Cancel(req.DowntimeID, req.Host, req.Service)
	switch {
	case err == nil:
		writeResult(w, fmt.Sprintf("cancelled %d downtime(s)", n))
	case errors.Is(err, model.ErrNotFound) && req.DowntimeID > 0:
		writeFailure(w, http.StatusNotFound, "Downtime ID does not seem valid")
	case errors.Is(err, model.ErrNotFound):
		writeFailure(w, http.StatusNotFound, "host or service not found")
	case errors.Is(err, downtime.ErrNoDowntimes):
		writeFailure(w, http.StatusOK, "no downtimes found")
	case errors.Is(err, downtime.ErrPartialFailure):
		writeFailure(w, http.StatusBadGateway, fmt.Sprintf("partial failure: cancelled %d downtime(s), remaining cancels failed", n))
	default:
		writeFailure(w, http.StatusBadGateway, "command delivery failed: "+err.Error())
	}
}

type commandRequest struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// SubmitCommand forwards an arbitrary daemon command. Semantics are the
// daemon's business; this endpoint only formats and delivers the line.
func (h *Handler) SubmitCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeFailure(w, http.StatusBadRequest, "command name is required")
		return
	}

	err := h.commands.Submit(req.Name, req.Args...)
	switch {
	case err == nil:
		writeResult(w, "command submitted")
	case errors.Is(err, command.ErrMissingArgs):
		writeFailure(w, http.StatusBadRequest, err.Error())
	default:
		writeFailure(w, http.StatusBadGateway, "command delivery failed: "+err.Error())
	}
}
