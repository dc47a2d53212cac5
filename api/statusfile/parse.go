// Package statusfile parses the monitoring daemon's status file into a
// model.Snapshot. The file is a sequence of blocks of the form
//
//	hoststatus {
//		host_name=web1
//		current_state=0
//		}
//
// Parsing is all-or-nothing: either the whole file builds a consistent
// Snapshot, or a ParseError pinpoints the broken region and nothing is
// published. Unknown block types and unknown keys are carried along or
// skipped without failing, so newer daemon versions don't break us.
package statusfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nagapi/api/model"
)

// ParseError describes structurally invalid status-file input.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("status file: line %d: %s", e.Line, e.Msg)
}

// Build reads the full status representation and constructs a Snapshot,
// including the downtime-by-ID index, in a single pass.
func Build(r io.Reader) (*model.Snapshot, error) {
	snap := model.NewSnapshot()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		blockType string
		blockLine int
		attrs     map[string]string
		inBlock   bool
		lineNo    int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !inBlock {
			if strings.HasSuffix(line, "{") {
				blockType = strings.TrimSpace(strings.TrimSuffix(line, "{"))
				blockLine = lineNo
				attrs = make(map[string]string)
				inBlock = true
				continue
			}
			if line == "}" {
				return nil, &ParseError{Line: lineNo, Msg: "close brace outside a block"}
			}
			// Stray text between blocks is tolerated.
			continue
		}

		if line == "}" {
			if err := commit(snap, blockType, attrs, blockLine); err != nil {
				return nil, err
			}
			inBlock = false
			continue
		}
		if strings.HasSuffix(line, "{") {
			return nil, &ParseError{Line: lineNo, Msg: "nested block inside " + blockType}
		}
		if key, value, ok := strings.Cut(line, "="); ok {
			attrs[strings.TrimSpace(key)] = value
		}
		// Lines without '=' inside a block carry nothing we index on; skip.
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if inBlock {
		return nil, &ParseError{Line: blockLine, Msg: "unterminated " + blockType + " block"}
	}

	return snap, nil
}

func commit(snap *model.Snapshot, blockType string, attrs map[string]string, line int) error {
	switch blockType {
	case "hoststatus":
		return commitHost(snap, attrs, line)
	case "servicestatus":
		return commitService(snap, attrs, line)
	case "hostdowntime":
		return commitDowntime(snap, attrs, line, false)
	case "servicedowntime":
		return commitDowntime(snap, attrs, line, true)
	default:
		// Unrecognized block type (info, programstatus, comments, ...).
		return nil
	}
}

func commitHost(snap *model.Snapshot, attrs map[string]string, line int) error {
	name := attrs["host_name"]
	if name == "" {
		return &ParseError{Line: line, Msg: "hoststatus block without host_name"}
	}
	snap.Hosts[name] = &model.Host{
		Name:      name,
		Attrs:     attrs,
		Services:  map[string]*model.Service{},
		Downtimes: map[int]*model.Downtime{},
	}
	return nil
}

func commitService(snap *model.Snapshot, attrs map[string]string, line int) error {
	hostName := attrs["host_name"]
	name := attrs["service_description"]
	if hostName == "" || name == "" {
		return &ParseError{Line: line, Msg: "servicestatus block without host_name/service_description"}
	}
	host, ok := snap.Hosts[hostName]
	if !ok {
		return &ParseError{Line: line, Msg: "servicestatus for unknown host " + hostName}
	}
	host.Services[name] = &model.Service{
		Name:      name,
		HostName:  hostName,
		Attrs:     attrs,
		Downtimes: map[int]*model.Downtime{},
	}
	return nil
}

func commitDowntime(snap *model.Snapshot, attrs map[string]string, line int, serviceScoped bool) error {
	id, err := strconv.Atoi(attrs["downtime_id"])
	if err != nil {
		return &ParseError{Line: line, Msg: "downtime block with bad downtime_id " + strconv.Quote(attrs["downtime_id"])}
	}
	if _, dup := snap.Downtimes[id]; dup {
		return &ParseError{Line: line, Msg: fmt.Sprintf("duplicate downtime_id %d", id)}
	}

	d := &model.Downtime{
		ID:        id,
		HostName:  attrs["host_name"],
		StartTime: parseUnix(attrs["start_time"]),
		EndTime:   parseUnix(attrs["end_time"]),
		Author:    attrs["author"],
		Comment:   attrs["comment"],
	}
	if serviceScoped {
		d.ServiceName = attrs["service_description"]
	}

	host, svc, rerr := snap.Resolve(d.HostName, d.ServiceName)
	if rerr != nil {
		return &ParseError{Line: line, Msg: fmt.Sprintf("downtime %d references unknown %s/%s", id, d.HostName, d.ServiceName)}
	}
	if svc != nil {
		svc.Downtimes[id] = d
	} else {
		host.Downtimes[id] = d
	}
	snap.Downtimes[id] = d
	return nil
}

// parseUnix tolerates missing or malformed timestamps; the values are opaque
// daemon output and a zero is more useful to callers than a failed rebuild.
func parseUnix(v string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
