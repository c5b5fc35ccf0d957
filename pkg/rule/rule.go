// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause
package rule

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/shimson94/multithreaded-firewall-server/pkg/iprange"
)

// Sentinel errors returned by store operations. The request engine maps
// these to the wire protocol's literal response strings.
var (
	// ErrInvalidRule indicates a malformed IP range or port range.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrRuleExists indicates an exact (ip_range, port_range) duplicate.
	ErrRuleExists = errors.New("rule already exists")

	// ErrRuleNotFound indicates no rule matches the given ranges exactly.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrIllegalQuery indicates a connection check against a malformed
	// IP address or an out-of-range port.
	ErrIllegalQuery = errors.New("illegal IP address or port")
)

// Query records one connection check that matched a rule.
type Query struct {
	IP   string
	Port int
}

// Rule represents one firewall policy entry: a pair of textual ranges
// plus the history of connection checks attributed to it.
type Rule struct {
	IPRange   string
	PortRange string
	Queries   []Query
}

// Store is an insertion-ordered collection of firewall rules. It owns
// all rules and their query histories.
type Store struct {
	rules []*Rule
}

// NewStore creates an empty rule store.
func NewStore() *Store {
	return &Store{}
}

// Add validates the given ranges and appends a new rule with empty
// history. It returns ErrInvalidRule on malformed ranges and
// ErrRuleExists when the exact (ipRange, portRange) pair is already
// stored.
func (s *Store) Add(ipRange, portRange string) error {
	if !iprange.IsValidAddressRange(ipRange) || !iprange.IsValidPortRange(portRange) {
		return ErrInvalidRule
	}

	if s.find(ipRange, portRange) >= 0 {
		return ErrRuleExists
	}

	s.rules = append(s.rules, &Rule{
		IPRange:   ipRange,
		PortRange: portRange,
	})

	log.Infof("Rule added: %s %s", ipRange, portRange)
	return nil
}

// Check tests whether a connection from ip on port is permitted by any
// stored rule. Rules are scanned in insertion order; the first rule
// whose IP range and port range both match records the query in its
// history and accepts the connection. It returns ErrIllegalQuery when
// ip is not a valid single address or port is outside [0, 65535]; the
// store is left untouched in that case.
func (s *Store) Check(ip string, port int) (bool, error) {
	if !iprange.IsValidAddress(ip) || port < 0 || port > iprange.MaxPort {
		return false, ErrIllegalQuery
	}

	for _, r := range s.rules {
		if iprange.AddressInRange(ip, r.IPRange) && iprange.PortInRange(port, r.PortRange) {
			r.Queries = append(r.Queries, Query{IP: ip, Port: port})
			log.Debugf("Connection accepted: %s:%d matched rule %s %s", ip, port, r.IPRange, r.PortRange)
			return true, nil
		}
	}

	log.Debugf("Connection rejected: %s:%d matched no rule", ip, port)
	return false, nil
}

// Delete removes the rule matching the given ranges exactly, compacting
// the store so surviving rules keep their relative order. It returns
// ErrInvalidRule on malformed ranges and ErrRuleNotFound when no rule
// matches.
func (s *Store) Delete(ipRange, portRange string) error {
	if !iprange.IsValidAddressRange(ipRange) || !iprange.IsValidPortRange(portRange) {
		return ErrInvalidRule
	}

	i := s.find(ipRange, portRange)
	if i < 0 {
		return ErrRuleNotFound
	}

	s.rules = append(s.rules[:i], s.rules[i+1:]...)
	log.Infof("Rule deleted: %s %s", ipRange, portRange)
	return nil
}

// Rules returns a deep copy of all rules in insertion order.
func (s *Store) Rules() []Rule {
	out := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		c := Rule{
			IPRange:   r.IPRange,
			PortRange: r.PortRange,
		}
		if len(r.Queries) > 0 {
			c.Queries = make([]Query, len(r.Queries))
			copy(c.Queries, r.Queries)
		}
		out = append(out, c)
	}
	return out
}

// Len returns the number of stored rules.
func (s *Store) Len() int {
	return len(s.rules)
}

// find returns the index of the rule matching both ranges exactly,
// or -1 if absent.
func (s *Store) find(ipRange, portRange string) int {
	for i, r := range s.rules {
		if r.IPRange == ipRange && r.PortRange == portRange {
			return i
		}
	}
	return -1
}
