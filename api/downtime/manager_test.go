package downtime

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"nagapi/api/model"
	"nagapi/api/state"
)

// fakeSink records submitted commands and can be told to fail for specific
// argument values.
type fakeSink struct {
	mu     sync.Mutex
	lines  []string
	failOn map[string]bool
}

func (f *fakeSink) Submit(name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range args {
		if f.failOn[a] {
			return errors.New("pipe broken")
		}
	}
	f.lines = append(f.lines, name+";"+strings.Join(args, ";"))
	return nil
}

func testStore() *state.Store {
	s := state.New()
	snap := model.NewSnapshot()

	web1 := &model.Host{
		Name:      "web1",
		Services:  map[string]*model.Service{},
		Downtimes: map[int]*model.Downtime{},
	}
	http := &model.Service{
		Name:      "http",
		HostName:  "web1",
		Downtimes: map[int]*model.Downtime{},
	}
	web1.Services["http"] = http
	snap.Hosts["web1"] = web1

	d1 := &model.Downtime{ID: 1, HostName: "web1"}
	d2 := &model.Downtime{ID: 2, HostName: "web1"}
	d5 := &model.Downtime{ID: 5, HostName: "web1", ServiceName: "http"}
	web1.Downtimes[1] = d1
	web1.Downtimes[2] = d2
	http.Downtimes[5] = d5
	snap.Downtimes[1] = d1
	snap.Downtimes[2] = d2
	snap.Downtimes[5] = d5

	s.Publish(snap)
	return s
}

func newTestManager(sink *fakeSink) *Manager {
	return &Manager{
		Store:    testStore(),
		Commands: sink,
		Now:      func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestScheduleHost(t *testing.T) {
	sink := &fakeSink{}
	m := newTestManager(sink)

	if err := m.Schedule("web1", "", 120, "alice", "maint"); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	want := "SCHEDULE_HOST_DOWNTIME;web1;1700000000;1700000120;1;0;0;alice;maint"
	if len(sink.lines) != 1 || sink.lines[0] != want {
		t.Errorf("lines = %v, want [%s]", sink.lines, want)
	}
}

func TestScheduleService(t *testing.T) {
	sink := &fakeSink{}
	m := newTestManager(sink)

	if err := m.Schedule("web1", "http", 3600, "bob", "cert rotation"); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	want := "SCHEDULE_SVC_DOWNTIME;web1;http;1700000000;1700003600;1;0;0;bob;cert rotation"
	if len(sink.lines) != 1 || sink.lines[0] != want {
		t.Errorf("lines = %v, want [%s]", sink.lines, want)
	}
}

func TestScheduleDurationBounds(t *testing.T) {
	sink := &fakeSink{}
	m := newTestManager(sink)

	for _, d := range []int64{59, 604801, 0, -60} {
		if err := m.Schedule("web1", "", d, "a", "c"); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %d: err = %v, want ErrInvalidDuration", d, err)
		}
	}
	if len(sink.lines) != 0 {
		t.Fatalf("rejected schedules must not reach the sink: %v", sink.lines)
	}

	// Boundaries are inclusive.
	for _, d := range []int64{60, 604800} {
		if err := m.Schedule("web1", "", d, "a", "c"); err != nil {
			t.Errorf("duration %d: %v", d, err)
		}
	}
	if len(sink.lines) != 2 {
		t.Errorf("got %d commands, want 2", len(sink.lines))
	}
}

func TestScheduleUnknownTarget(t *testing.T) {
	sink := &fakeSink{}
	m := newTestManager(sink)

	if err := m.Schedule("missing", "", 120, "a", "c"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := m.Schedule("web1", "missing", 120, "a", "c"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCancelByID(t *testing.T) {
	sink := &fakeSink{}
	m := newTestManager(sink)

	n, err := m.Cancel(5, "", "")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if n != 1 {
		t.Errorf("cancelled = %d, want 1", n)
	}
	// Downtime 5 is service-scoped.
	if sink.lines[0] != "DEL_SVC_DOWNTIME;5" {
		t.Errorf("lines = %v", sink.lines)
	}
}

func TestCancelByIDNotFound(t *testing.T) {
	m := newTestManager(&fakeSink{})

	if _, err := m.Cancel(42, "", ""); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCancelAllForHost(t *testing.T) {
	sink := &fakeSink{}
	m := newTestManager(sink)

	n, err := m.Cancel(0, "web1", "")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if n != 2 {
		t.Errorf("cancelled = %d, want 2 (host-scoped only)", n)
	}
	got := map[string]bool{}
	for _, l := range sink.lines {
		got[l] = true
	}
	if !got["DEL_HOST_DOWNTIME;1"] || !got["DEL_HOST_DOWNTIME;2"] {
		t.Errorf("lines = %v", sink.lines)
	}
}

func TestCancelPartialFailure(t *testing.T) {
	sink := &fakeSink{failOn: map[string]bool{"2": true}}
	m := newTestManager(sink)

	n, err := m.Cancel(0, "web1", "")
	if !errors.Is(err, ErrPartialFailure) {
		t.Fatalf("err = %v, want ErrPartialFailure", err)
	}
	if n != 1 {
		t.Errorf("cancelled = %d, want 1", n)
	}
}

func TestCancelTotalFailure(t *testing.T) {
	sink := &fakeSink{failOn: map[string]bool{"1": true, "2": true}}
	m := newTestManager(sink)

	_, err := m.Cancel(0, "web1", "")
	if err == nil || errors.Is(err, ErrPartialFailure) || errors.Is(err, ErrNoDowntimes) {
		t.Fatalf("err = %v, want the plain delivery error", err)
	}
}

func TestCancelNoneFound(t *testing.T) {
	sink := &fakeSink{}
	m := newTestManager(sink)

	// Publish a snapshot extended with a host that has nothing scheduled.
	snap := m.Store.Current()
	empty := &model.Host{
		Name:      "idle1",
		Services:  map[string]*model.Service{},
		Downtimes: map[int]*model.Downtime{},
	}
	next := model.NewSnapshot()
	for k, v := range snap.Hosts {
		next.Hosts[k] = v
	}
	for k, v := range snap.Downtimes {
		next.Downtimes[k] = v
	}
	next.Hosts["idle1"] = empty
	m.Store.Publish(next)

	if _, err := m.Cancel(0, "idle1", ""); !errors.Is(err, ErrNoDowntimes) {
		t.Errorf("err = %v, want ErrNoDowntimes", err)
	}
	if len(sink.lines) != 0 {
		t.Errorf("no commands expected, got %v", sink.lines)
	}
}

func TestScheduleMessageShape(t *testing.T) {
	// Guard the exact wire layout: [T] NAME;host;T;T+dur;1;0;0;author;comment.
	sink := &fakeSink{}
	m := newTestManager(sink)

	if err := m.Schedule("web1", "", 120, "alice", "maint"); err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf("SCHEDULE_HOST_DOWNTIME;web1;%d;%d;1;0;0;alice;maint", 1700000000, 1700000000+120)
	if sink.lines[0] != want {
		t.Errorf("got %q, want %q", sink.lines[0], want)
	}
}
