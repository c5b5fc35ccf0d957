// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause

// Package rule provides the in-memory firewall rule store.
//
// It handles:
//   - Rule creation, deletion, and listing
//   - Connection checks against stored rules
//   - Per-rule history of matched connection attempts
//
// # Rule Model
//
// A rule is a pair of textual ranges:
//   - IP range: a single dotted-quad IPv4 address or "start-end"
//   - Port range: a single port or "p-q" with p < q strictly
//
// The (IPRange, PortRange) pair is unique across the store; adding a
// duplicate pair is rejected, not merged. Rules keep insertion order,
// and deletion compacts the store without reordering survivors.
//
// Every connection check that matches a rule appends the checked
// (ip, port) pair to that rule's query history. A check matching
// several rules is attributed to the earliest-added one only
// (first-match-wins). History is destroyed with its rule; it does not
// survive a delete and re-add cycle.
//
// # Example Usage
//
//	store := rule.NewStore()
//
//	if err := store.Add("10.0.0.1-10.0.0.10", "8000-8010"); err != nil {
//	    log.Fatal(err)
//	}
//
//	allowed, err := store.Check("10.0.0.5", 8005)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := store.Delete("10.0.0.1-10.0.0.10", "8000-8010"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The Store is NOT thread-safe. Concurrent access should be protected
// by the caller; the request engine serializes every transaction under
// a single exclusive mutex.
package rule
