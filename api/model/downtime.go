package model

// Downtime is a scheduled suppression window attached to a host or to one
// specific service on a host.
type Downtime struct {
	ID          int    `json:"id"`
	HostName    string `json:"host"`
	ServiceName string `json:"service,omitempty"` // empty for a host-scoped downtime
	StartTime   int64  `json:"startTime"`
	EndTime     int64  `json:"endTime"`
	Author      string `json:"author"`
	Comment     string `json:"comment"`
}

// HostScoped reports whether the downtime applies to the whole host rather
// than a single service.
func (d *Downtime) HostScoped() bool {
	return d.ServiceName == ""
}
