// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause
package engine

import "github.com/shimson94/multithreaded-firewall-server/pkg/rule"

// Service defines the operations the request engine exposes to its
// frontends. This interface is useful for testing and dependency
// injection.
type Service interface {
	Process(raw string) string
	Snapshot() []rule.Rule
	Requests() []string
	Stats() Stats
	RuleCount() int
}

// Ensure Engine implements Service interface
var _ Service = (*Engine)(nil)
