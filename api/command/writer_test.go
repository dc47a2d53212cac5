package command

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// newTestWriter backs the writer with a regular file; the serialization
// contract is the same as for the daemon's pipe.
func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daemon.cmd")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	return w, path
}

func TestNewWriterMissingFile(t *testing.T) {
	if _, err := NewWriter(filepath.Join(t.TempDir(), "absent.cmd")); err == nil {
		t.Fatal("expected error when command file is missing")
	}
}

func TestSubmitFormat(t *testing.T) {
	w, path := newTestWriter(t)
	w.now = func() time.Time { return time.Unix(1700000000, 0) }

	if err := w.Submit("SCHEDULE_HOST_DOWNTIME", "web1", "1700000000", "1700000120", "1", "0", "0", "alice", "maint"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "[1700000000] SCHEDULE_HOST_DOWNTIME;web1;1700000000;1700000120;1;0;0;alice;maint\n"
	if string(data) != want {
		t.Errorf("wrote %q, want %q", data, want)
	}
}

func TestSubmitNoArgs(t *testing.T) {
	w, path := newTestWriter(t)

	if err := w.Submit("RESTART_PROGRAM"); !errors.Is(err, ErrMissingArgs) {
		t.Fatalf("err = %v, want ErrMissingArgs", err)
	}

	data, _ := os.ReadFile(path)
	if len(data) != 0 {
		t.Error("channel must stay untouched on local rejection")
	}
}

func TestSubmitConcurrent(t *testing.T) {
	w, path := newTestWriter(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := w.Submit("DEL_HOST_DOWNTIME", fmt.Sprintf("%d", i)); err != nil {
				t.Errorf("Submit %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != n {
		t.Fatalf("got %d lines, want %d", len(lines), n)
	}

	seen := map[string]bool{}
	for _, l := range lines {
		// Every line is complete and well-formed, no interleaving.
		var ts int64
		var id int
		if _, err := fmt.Sscanf(l, "[%d] DEL_HOST_DOWNTIME;%d", &ts, &id); err != nil {
			t.Fatalf("malformed line %q: %v", l, err)
		}
		seen[l] = true
	}
	if len(seen) != n {
		t.Errorf("got %d distinct lines, want %d", len(seen), n)
	}
}
