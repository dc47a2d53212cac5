package logtail

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"nagapi/api/state"
)

func newTestTailer(t *testing.T) (*Tailer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daemon.log")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	return &Tailer{Store: state.New(), LogFile: path}, path
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
}

func TestReadIncremental(t *testing.T) {
	tl, path := newTestTailer(t)

	appendFile(t, path, "alpha\nbeta\n")
	tl.readOnce()
	appendFile(t, path, "gamma\n")
	tl.readOnce()

	want := []string{"alpha", "beta", "gamma"}
	if got := tl.Store.RecentLog(); !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

func TestPartialLineHeldBack(t *testing.T) {
	tl, path := newTestTailer(t)

	appendFile(t, path, "complete\nincompl")
	tl.readOnce()

	if got := tl.Store.RecentLog(); !reflect.DeepEqual(got, []string{"complete"}) {
		t.Fatalf("lines = %v, want only the complete line", got)
	}

	// The terminator arrives on a later tick; the whole line comes through.
	appendFile(t, path, "ete\nnext\n")
	tl.readOnce()

	want := []string{"complete", "incomplete", "next"}
	if got := tl.Store.RecentLog(); !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

func TestTruncationResetsOffset(t *testing.T) {
	tl, path := newTestTailer(t)

	appendFile(t, path, "old line one\nold line two\n")
	tl.readOnce()

	// Rotate: the file restarts smaller than the stored offset.
	if err := os.WriteFile(path, []byte("fresh\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tl.readOnce()

	want := []string{"old line one", "old line two", "fresh"}
	if got := tl.Store.RecentLog(); !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
	if tl.offset != 6 {
		t.Errorf("offset = %d, want 6 (end of rewritten file)", tl.offset)
	}
}

func TestMissingFileRetries(t *testing.T) {
	tl := &Tailer{Store: state.New(), LogFile: filepath.Join(t.TempDir(), "not-yet.log")}

	tl.readOnce() // no panic, nothing consumed

	if err := os.WriteFile(tl.LogFile, []byte("first\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tl.readOnce()

	if got := tl.Store.RecentLog(); !reflect.DeepEqual(got, []string{"first"}) {
		t.Errorf("lines = %v, want [first]", got)
	}
}

func TestCarriageReturnStripped(t *testing.T) {
	tl, path := newTestTailer(t)

	appendFile(t, path, "windows line\r\n")
	tl.readOnce()

	if got := tl.Store.RecentLog(); !reflect.DeepEqual(got, []string{"windows line"}) {
		t.Errorf("lines = %v", got)
	}
}
