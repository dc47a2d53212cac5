// Package logtail follows the daemon's append-only log file and feeds
// complete lines into the state store's recent-log ring.
package logtail

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"time"

	"nagapi/api/state"
)

// Tailer reads the log file incrementally by byte offset. A trailing line
// without a terminator is held back until a later tick completes it. When
// the file shrinks below the stored offset (truncation or rotation), the
// offset resets to 0 and reading resumes from the start; content written
// between ticks of a rotation is lost, which is accepted.
type Tailer struct {
	Store    *state.Store
	LogFile  string
	Interval time.Duration

	offset int64
}

// Run tails until ctx is cancelled. It blocks, so callers start it in its
// own goroutine. Transient open/read failures are logged and retried on the
// next tick.
func (t *Tailer) Run(ctx context.Context) {
	if t.Interval == 0 {
		t.Interval = time.Second
	}

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	t.readOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.readOnce()
		}
	}
}

// readOnce consumes the bytes between the stored offset and the file's
// current size, appending each complete line to the ring.
func (t *Tailer) readOnce() {
	info, err := os.Stat(t.LogFile)
	if err != nil {
		log.Printf("logtail: stat %s: %v", t.LogFile, err)
		return
	}

	size := info.Size()
	if size < t.offset {
		log.Printf("logtail: %s truncated, rereading from start", t.LogFile)
		t.offset = 0
	}
	if size == t.offset {
		return
	}

	f, err := os.Open(t.LogFile)
	if err != nil {
		log.Printf("logtail: open %s: %v", t.LogFile, err)
		return
	}
	defer f.Close()

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		log.Printf("logtail: seek %s: %v", t.LogFile, err)
		return
	}

	// Bounded by the size observed above, so a writer racing us can't make
	// this read unbounded.
	data, err := io.ReadAll(io.LimitReader(f, size-t.offset))
	if err != nil {
		log.Printf("logtail: read %s: %v", t.LogFile, err)
		return
	}

	consumed := 0
	for {
		i := bytes.IndexByte(data[consumed:], '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimSuffix(data[consumed:consumed+i], []byte("\r")))
		t.Store.AppendLog(line)
		consumed += i + 1
	}
	t.offset += int64(consumed)
}
