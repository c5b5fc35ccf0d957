// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause
package engine

// maxRequestEntries caps the audit log. Once the cap is reached the log
// stops growing; entries are never evicted.
const maxRequestEntries = 100

// RequestLog is a bounded append-only audit log of raw request lines.
type RequestLog struct {
	entries []string
	max     int
}

// NewRequestLog creates a request log capped at max entries.
func NewRequestLog(max int) *RequestLog {
	return &RequestLog{max: max}
}

// Record appends a trimmed request line. The exact list-requests
// command itself is never recorded, and recording stops once the cap
// is reached.
func (l *RequestLog) Record(line string) {
	if line == cmdListRequests {
		return
	}
	if len(l.entries) >= l.max {
		return
	}
	l.entries = append(l.entries, line)
}

// Entries returns a copy of all recorded lines, oldest first.
func (l *RequestLog) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded lines.
func (l *RequestLog) Len() int {
	return len(l.entries)
}
