// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause

// Package engine implements the textual request protocol over the rule
// store: one line in, one response out, each call a complete atomic
// transaction.
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/shimson94/multithreaded-firewall-server/pkg/rule"
)

// Protocol response literals. The add and delete paths use different
// invalid-rule wordings; both are observable wire behavior.
const (
	RespRuleAdded          = "Rule added"
	RespRuleExists         = "Rule already exists"
	RespInvalidRule        = "Invalid rule"
	RespInvalidRuleFormat  = "Invalid rule format"
	RespConnectionAccepted = "Connection accepted"
	RespConnectionRejected = "Connection rejected"
	RespIllegalQuery       = "Illegal IP address or port specified"
	RespRuleDeleted        = "Rule deleted"
	RespRuleNotFound       = "Rule not found"
	RespRuleInvalid        = "Rule invalid"
	RespIllegalRequest     = "Illegal request"
	RespNoRulesFound       = "No rules found"
	RespNoRequestsFound    = "No requests found"
)

const (
	cmdListRequests = "R"
	cmdListRules    = "L"
)

// responseBufferSize bounds every response. An overflowing response is
// truncated to responseBufferSize-1 bytes; the tail is dropped silently.
const responseBufferSize = 1024

// Stats holds cumulative request counters.
type Stats struct {
	TotalRequests       uint64
	RulesAdded          uint64
	RulesDeleted        uint64
	ConnectionsAccepted uint64
	ConnectionsRejected uint64
	IllegalRequests     uint64
}

// Engine parses request lines, dispatches to the rule store and the
// request log, and formats responses. A single exclusive mutex guards
// the whole parse-dispatch-respond sequence, so every call to Process
// (and every structured accessor) is atomic with respect to the others.
type Engine struct {
	mu       sync.Mutex
	store    *rule.Store
	requests *RequestLog
	stats    Stats
}

// New creates an engine over the given rule store.
func New(store *rule.Store) *Engine {
	return &Engine{
		store:    store,
		requests: NewRequestLog(maxRequestEntries),
	}
}

// Process handles one request line: trims it, records it in the audit
// log, dispatches and returns the response. Responses for L and R carry
// one trailing newline per emitted line; single-line responses carry
// none. Every response is truncated to the fixed buffer size.
func (e *Engine) Process(raw string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	line := strings.TrimSpace(raw)
	e.requests.Record(line)
	e.stats.TotalRequests++

	resp := e.dispatch(line)
	if len(resp) >= responseBufferSize {
		resp = resp[:responseBufferSize-1]
	}
	return resp
}

func (e *Engine) dispatch(line string) string {
	switch {
	case strings.HasPrefix(line, "A "):
		ipRange, portRange, ok := splitRuleArgs(line[2:])
		if !ok {
			return RespInvalidRuleFormat
		}
		return e.addRule(ipRange, portRange)

	case strings.HasPrefix(line, "C "):
		ip, port, ok := splitCheckArgs(line[2:])
		if !ok {
			return RespIllegalQuery
		}
		return e.checkConnection(ip, port)

	case strings.HasPrefix(line, "D "):
		ipRange, portRange, ok := splitRuleArgs(line[2:])
		if !ok {
			return RespInvalidRuleFormat
		}
		return e.deleteRule(ipRange, portRange)

	case line == cmdListRequests:
		return e.listRequests()

	case line == cmdListRules:
		return e.listRules()

	default:
		e.stats.IllegalRequests++
		return RespIllegalRequest
	}
}

func (e *Engine) addRule(ipRange, portRange string) string {
	switch err := e.store.Add(ipRange, portRange); {
	case err == nil:
		e.stats.RulesAdded++
		return RespRuleAdded
	case errors.Is(err, rule.ErrRuleExists):
		return RespRuleExists
	default:
		return RespInvalidRule
	}
}

func (e *Engine) checkConnection(ip string, port int) string {
	allowed, err := e.store.Check(ip, port)
	if err != nil {
		return RespIllegalQuery
	}
	if allowed {
		e.stats.ConnectionsAccepted++
		return RespConnectionAccepted
	}
	e.stats.ConnectionsRejected++
	return RespConnectionRejected
}

func (e *Engine) deleteRule(ipRange, portRange string) string {
	switch err := e.store.Delete(ipRange, portRange); {
	case err == nil:
		e.stats.RulesDeleted++
		return RespRuleDeleted
	case errors.Is(err, rule.ErrRuleNotFound):
		return RespRuleNotFound
	default:
		return RespRuleInvalid
	}
}

func (e *Engine) listRules() string {
	if e.store.Len() == 0 {
		return RespNoRulesFound + "\n"
	}

	var b strings.Builder
	for _, r := range e.store.Rules() {
		fmt.Fprintf(&b, "Rule: %s %s\n", r.IPRange, r.PortRange)
		for _, q := range r.Queries {
			fmt.Fprintf(&b, "Query: %s %d\n", q.IP, q.Port)
		}
	}
	return b.String()
}

func (e *Engine) listRequests() string {
	if e.requests.Len() == 0 {
		return RespNoRequestsFound + "\n"
	}

	var b strings.Builder
	for _, line := range e.requests.Entries() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Snapshot returns a consistent deep copy of all rules.
func (e *Engine) Snapshot() []rule.Rule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Rules()
}

// Requests returns a copy of the audit log entries, oldest first.
func (e *Engine) Requests() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requests.Entries()
}

// Stats returns a snapshot of the cumulative request counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// RuleCount returns the number of stored rules.
func (e *Engine) RuleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}

// splitRuleArgs extracts the first two whitespace-separated tokens.
// Extra tokens are ignored, matching the original scanf parsing.
func splitRuleArgs(s string) (ipRange, portRange string, ok bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

// splitCheckArgs extracts an address token and an integer port token.
func splitCheckArgs(s string) (ip string, port int, ok bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return "", 0, false
	}
	port, err := strconv.Atoi(fields[1])
	if err != nil {
		log.Debugf("Rejected non-integer port token %q", fields[1])
		return "", 0, false
	}
	return fields[0], port, true
}
