package model

import "errors"

// ErrNotFound is returned when a host, service, or downtime lookup misses.
var ErrNotFound = errors.New("not found")

// Snapshot is an immutable point-in-time view of everything the daemon knows
// about: the host/service graph plus every downtime currently scheduled.
// A Snapshot is never mutated after it has been published; updating the world
// means building an entirely new Snapshot and swapping the reference.
type Snapshot struct {
	Hosts map[string]*Host `json:"hosts"`

	// Downtimes indexes every downtime in the graph by ID so lookups don't
	// have to walk hosts and services.
	Downtimes map[int]*Downtime `json:"-"`
}

// NewSnapshot returns an empty snapshot. Readers always get a usable value,
// even before the first successful status-file parse.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Hosts:     map[string]*Host{},
		Downtimes: map[int]*Downtime{},
	}
}

// Resolve looks up a host, or a service on a host when service is non-empty.
// Exactly one of the returned host/service pointers is the primary result:
// for a host lookup the service is nil.
func (s *Snapshot) Resolve(host, service string) (*Host, *Service, error) {
	h, ok := s.Hosts[host]
	if !ok {
		return nil, nil, ErrNotFound
	}
	if service == "" {
		return h, nil, nil
	}
	svc, ok := h.Services[service]
	if !ok {
		return nil, nil, ErrNotFound
	}
	return h, svc, nil
}

// FindDowntime returns the downtime with the given ID from the secondary
// index, in O(1).
func (s *Snapshot) FindDowntime(id int) (*Downtime, error) {
	d, ok := s.Downtimes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// Counts reports graph sizes, used for reload logging and hub events.
func (s *Snapshot) Counts() (hosts, services, downtimes int) {
	hosts = len(s.Hosts)
	for _, h := range s.Hosts {
		services += len(h.Services)
	}
	downtimes = len(s.Downtimes)
	return
}
