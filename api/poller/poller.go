// Package poller keeps the state store's Snapshot in sync with the daemon's
// status file.
package poller

import (
	"context"
	"log"
	"os"
	"time"

	"nagapi/api/hub"
	"nagapi/api/state"
	"nagapi/api/statusfile"
)

// Poller rebuilds and publishes a Snapshot whenever the status file's
// modification time changes. A failed rebuild leaves the previously
// published Snapshot in place and is retried on the next tick.
type Poller struct {
	Store      *state.Store
	StatusFile string
	Interval   time.Duration
	WS         *hub.Hub // optional; nil disables reload events

	lastMod time.Time // mtime of the last successful build
}

// Run polls until ctx is cancelled. It blocks, so callers start it in its
// own goroutine.
func (p *Poller) Run(ctx context.Context) {
	if p.Interval == 0 {
		p.Interval = time.Second
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	// Populate the store before the first tick.
	p.pollOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce()
		}
	}
}

// pollOnce performs one check-and-maybe-rebuild cycle. When the mtime is
// unchanged since the last successful build, the only I/O is the stat call.
func (p *Poller) pollOnce() {
	info, err := os.Stat(p.StatusFile)
	if err != nil {
		log.Printf("poller: stat %s: %v", p.StatusFile, err)
		return
	}
	if info.ModTime().Equal(p.lastMod) {
		return
	}

	f, err := os.Open(p.StatusFile)
	if err != nil {
		log.Printf("poller: open %s: %v", p.StatusFile, err)
		return
	}
	snap, err := statusfile.Build(f)
	f.Close()
	if err != nil {
		log.Printf("poller: rebuild failed, keeping previous snapshot: %v", err)
		if p.WS != nil {
			p.WS.Broadcast(hub.Event{Type: "state.error", Payload: err.Error()})
		}
		return
	}

	p.Store.Publish(snap)
	p.lastMod = info.ModTime()

	hosts, services, downtimes := snap.Counts()
	log.Printf("poller: published snapshot: %d hosts, %d services, %d downtimes", hosts, services, downtimes)
	if p.WS != nil {
		p.WS.Broadcast(hub.Event{Type: "state.reload", Payload: map[string]int{
			"hosts":     hosts,
			"services":  services,
			"downtimes": downtimes,
		}})
	}
}
