package model

// Host is one monitored machine as reported by the daemon's status file.
// Attrs holds the raw key=value status attributes verbatim; their semantics
// belong to the daemon, not to this API.
type Host struct {
	Name      string              `json:"name"`
	Attrs     map[string]string   `json:"attrs"`
	Services  map[string]*Service `json:"services"`
	Downtimes map[int]*Downtime   `json:"downtimes,omitempty"`
}

// Service is one check on a host. HostName is a key back into the owning
// Snapshot rather than a pointer, which keeps the graph acyclic.
type Service struct {
	Name      string            `json:"name"`
	HostName  string            `json:"host"`
	Attrs     map[string]string `json:"attrs"`
	Downtimes map[int]*Downtime `json:"downtimes,omitempty"`
}
