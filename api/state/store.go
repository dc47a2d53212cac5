// Package state holds the process-wide read model: the currently published
// Snapshot and the ring of recent daemon log lines. It is the single shared
// surface between the periodic file readers and the request handlers, and is
// injected explicitly everywhere rather than living in a package global.
package state

import (
	"sync"
	"sync/atomic"

	"nagapi/api/model"
)

// LogCapacity bounds the recent-log ring. Oldest lines are evicted silently
// when the ring is full.
const LogCapacity = 1000

// Store is safe for concurrent use. The Snapshot side is lock-free: the
// poller swaps in fully built immutable snapshots, readers just load the
// pointer. The log ring has one writer (the tailer) and many readers, so
// appends and copies go through a mutex.
type Store struct {
	snap atomic.Pointer[model.Snapshot]

	mu    sync.Mutex
	lines []string
	head  int
	count int
}

// New returns a Store holding an empty Snapshot, so readers never see nil
// before the first successful status-file build.
func New() *Store {
	s := &Store{lines: make([]string, LogCapacity)}
	s.snap.Store(model.NewSnapshot())
	return s
}

// Current returns the published Snapshot. The reference is stable for the
// duration of the caller's use: a later Publish does not affect it.
func (s *Store) Current() *model.Snapshot {
	return s.snap.Load()
}

// Publish atomically replaces the published Snapshot. The snapshot must not
// be mutated after this call.
func (s *Store) Publish(snap *model.Snapshot) {
	s.snap.Store(snap)
}

// Resolve looks up a host (service == "") or a service in the current
// Snapshot.
func (s *Store) Resolve(host, service string) (*model.Host, *model.Service, error) {
	return s.Current().Resolve(host, service)
}

// FindDowntime looks up a downtime by ID in the current Snapshot.
func (s *Store) FindDowntime(id int) (*model.Downtime, error) {
	return s.Current().FindDowntime(id)
}

// AppendLog adds one log line to the ring, evicting the oldest when full.
func (s *Store) AppendLog(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == len(s.lines) {
		s.lines[s.head] = line
		s.head = (s.head + 1) % len(s.lines)
		return
	}
	s.lines[(s.head+s.count)%len(s.lines)] = line
	s.count++
}

// RecentLog returns a copy of the ring contents in insertion order, oldest
// first. The copy is the caller's to keep.
func (s *Store) RecentLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, s.count)
	for i := 0; i < s.count; i++ {
		out[i] = s.lines[(s.head+i)%len(s.lines)]
	}
	return out
}
