// Package downtime implements the two request-level downtime operations on
// top of the state store and the command sink: scheduling a new downtime
// and cancelling existing ones.
package downtime

import (
	"errors"
	"strconv"
	"time"

	"nagapi/api/command"
	"nagapi/api/state"
)

// Duration bounds for a scheduled downtime, inclusive.
const (
	MinDuration = 60     // one minute
	MaxDuration = 604800 // seven days
)

var (
	// ErrInvalidDuration rejects a schedule request outside [MinDuration, MaxDuration].
	ErrInvalidDuration = errors.New("duration must be between 60 and 604800 seconds")

	// ErrNoDowntimes means a cancel request matched a real host/service that
	// has nothing to cancel. Legitimate outcome, not a failure.
	ErrNoDowntimes = errors.New("no downtimes found")

	// ErrPartialFailure means a multi-target cancel delivered some but not
	// all cancel commands.
	ErrPartialFailure = errors.New("some downtimes could not be cancelled")
)

// Manager resolves schedule/cancel requests against the current Snapshot and
// emits the corresponding daemon commands.
type Manager struct {
	Store    *state.Store
	Commands command.Sink
	Now      func() time.Time
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Schedule issues a fixed, active downtime for a host (service == "") or a
// single service, starting now and lasting durationSec seconds. Author and
// comment are forwarded verbatim.
func (m *Manager) Schedule(host, service string, durationSec int64, author, comment string) error {
	if durationSec < MinDuration || durationSec > MaxDuration {
		return ErrInvalidDuration
	}
	_, svc, err := m.Store.Resolve(host, service)
	if err != nil {
		return err
	}

	now := m.now().Unix()
	start := strconv.FormatInt(now, 10)
	end := strconv.FormatInt(now+durationSec, 10)

	// fixed=1, trigger id and duration fields unused for fixed downtimes.
	if svc != nil {
		return m.Commands.Submit("SCHEDULE_SVC_DOWNTIME",
			host, service, start, end, "1", "0", "0", author, comment)
	}
	return m.Commands.Submit("SCHEDULE_HOST_DOWNTIME",
		host, start, end, "1", "0", "0", author, comment)
}

// Cancel removes downtimes. With id > 0 it cancels exactly that downtime,
// looked up in the snapshot-wide index (model.ErrNotFound when absent).
// Otherwise it resolves (host, service) and cancels every downtime attached
// to that object, attempting all of them even if one fails. It returns how
// many cancel commands were delivered.
//
// Outcomes are distinct: ErrNoDowntimes when the target exists but has
// nothing scheduled, ErrPartialFailure when only some cancels were
// delivered, and the delivery error itself when every cancel failed.
func (m *Manager) Cancel(id int, host, service string) (int, error) {
	var targets []int
	var serviceScoped []bool

	if id > 0 {
		d, err := m.Store.FindDowntime(id)
		if err != nil {
			return 0, err
		}
		targets = append(targets, d.ID)
		serviceScoped = append(serviceScoped, !d.HostScoped())
	} else {
		h, svc, err := m.Store.Resolve(host, service)
		if err != nil {
			return 0, err
		}
		if svc != nil {
			for _, d := range svc.Downtimes {
				targets = append(targets, d.ID)
				serviceScoped = append(serviceScoped, true)
			}
		} else {
			for _, d := range h.Downtimes {
				targets = append(targets, d.ID)
				serviceScoped = append(serviceScoped, false)
			}
		}
		if len(targets) == 0 {
			return 0, ErrNoDowntimes
		}
	}

	var cancelled int
	var lastErr error
	for i, dID := range targets {
		name := "DEL_HOST_DOWNTIME"
		if serviceScoped[i] {
			name = "DEL_SVC_DOWNTIME"
		}
		if err := m.Commands.Submit(name, strconv.Itoa(dID)); err != nil {
			lastErr = err
			continue
		}
		cancelled++
	}

	switch {
	case lastErr == nil:
		return cancelled, nil
	case cancelled > 0:
		return cancelled, ErrPartialFailure
	default:
		return 0, lastErr
	}
}
