package handler

import (
	"encoding/json"
	"net/http"

	"nagapi/api/command"
	"nagapi/api/config"
	"nagapi/api/downtime"
	"nagapi/api/hub"
	"nagapi/api/state"
)

// Handler serves the HTTP query surface over the state store and forwards
// control operations to the command sink.
type Handler struct {
	store     *state.Store
	commands  command.Sink
	downtimes *downtime.Manager
	ws        *hub.Hub
	cfg       *config.Config
}

func New(store *state.Store, commands command.Sink, ws *hub.Hub, cfg *config.Config) *Handler {
	return &Handler{
		store:    store,
		commands: commands,
		ws:       ws,
		cfg:      cfg,
		downtimes: &downtime.Manager{
			Store:    store,
			Commands: commands,
		},
	}
}

// envelope is the wire shape of every response: content carries the result
// on success and a human-readable message on failure.
type envelope struct {
	Success bool        `json:"success"`
	Content interface{} `json:"content"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeResult(w http.ResponseWriter, content interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Content: content})
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Content: msg})
}
