// Package command delivers external commands to the monitoring daemon
// through its command file (normally a named pipe). The daemon provides no
// serialization of its own: two unsynchronized writers can interleave
// partial lines, so every write here happens under one mutex covering
// format, open, write, and close.
package command

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// ErrMissingArgs rejects a command with no arguments before the command
// file is touched. Every daemon command carries at least one argument.
var ErrMissingArgs = errors.New("command requires at least one argument")

// Sink accepts formatted daemon commands. Handlers and the downtime
// operations depend on this rather than on Writer so tests can fake delivery.
type Sink interface {
	Submit(name string, args ...string) error
}

// Writer writes commands to the daemon's command file, one fully formed
// line per Submit call:
//
//	[<unix-timestamp>] <NAME>;<arg1>;<arg2>;...
type Writer struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewWriter fails when the command file is absent: without it no command
// can ever reach the daemon, so startup must not proceed.
func NewWriter(path string) (*Writer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("command file %s: %w", path, err)
	}
	return &Writer{path: path, now: time.Now}, nil
}

// Submit formats and writes one command line. At most one write is in
// flight at any time, regardless of how many callers there are. There are
// no retries: a failed write is reported to the caller and nothing else.
func (w *Writer) Submit(name string, args ...string) error {
	if len(args) == 0 {
		return ErrMissingArgs
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	line := fmt.Sprintf("[%d] %s;%s\n", w.now().Unix(), name, strings.Join(args, ";"))

	// Open per write: the daemon may recreate the pipe, and holding a pipe
	// open write-only blocks fifo readers from seeing EOF boundaries.
	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("open command file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	return nil
}
