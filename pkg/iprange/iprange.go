// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause

// Package iprange validates and matches IPv4 address ranges and port ranges.
//
// A range is either a single value ("10.0.0.1", "80") or an inclusive
// hyphenated interval ("10.0.0.1-10.0.0.10", "8000-8010"). Addresses are
// compared as 32-bit host-order integers.
package iprange

import (
	"fmt"
	"strings"
)

// MaxPort is the highest valid TCP/UDP port number.
const MaxPort = 65535

// ParseIPv4 parses a dotted-quad IPv4 address into a 32-bit host-order
// integer. Only strict dotted-quad notation is accepted: exactly four
// decimal octets in 0-255, no leading zeros, no hostnames, no IPv6.
func ParseIPv4(s string) (uint32, error) {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return 0, fmt.Errorf("invalid IPv4 address %q", s)
	}

	var addr uint32
	for _, oct := range octets {
		if len(oct) == 0 || len(oct) > 3 {
			return 0, fmt.Errorf("invalid IPv4 address %q", s)
		}
		if len(oct) > 1 && oct[0] == '0' {
			return 0, fmt.Errorf("invalid IPv4 address %q", s)
		}
		var val uint32
		for _, c := range oct {
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("invalid IPv4 address %q", s)
			}
			val = val*10 + uint32(c-'0')
		}
		if val > 255 {
			return 0, fmt.Errorf("invalid IPv4 address %q", s)
		}
		addr = addr<<8 | val
	}
	return addr, nil
}

// IsValidAddress reports whether s is a valid single IPv4 address.
func IsValidAddress(s string) bool {
	_, err := ParseIPv4(s)
	return err == nil
}

// IsValidAddressRange reports whether r is a valid address range.
// A range is a single address or "start-end" split on the first hyphen,
// with both sides valid addresses. An inverted range (start > end) is
// accepted here; it simply matches nothing.
func IsValidAddressRange(r string) bool {
	if !strings.Contains(r, "-") {
		return IsValidAddress(r)
	}
	start, end, _ := strings.Cut(r, "-")
	return IsValidAddress(start) && IsValidAddress(end)
}

// IsValidPortRange reports whether r is a valid port range. The single
// form requires 0 <= port <= 65535; the "p-q" form additionally requires
// p < q strictly (equal bounds are rejected, unlike address ranges).
//
// Bounds are read with atoi semantics: non-numeric text parses as 0
// rather than failing, so e.g. "abc" is a valid single port (port 0).
// Inherited from the original server and pinned by tests.
func IsValidPortRange(r string) bool {
	if !strings.Contains(r, "-") {
		port := atoi(r)
		return port >= 0 && port <= MaxPort
	}
	first, second, _ := strings.Cut(r, "-")
	start, end := atoi(first), atoi(second)
	return start >= 0 && end <= MaxPort && start < end
}

// AddressInRange reports whether ip falls inside the address range rng.
// The single form matches on numeric equality; the "start-end" form
// matches start <= ip <= end, inclusive both ends. Unparsable input on
// either side yields false.
func AddressInRange(ip, rng string) bool {
	ipInt, err := ParseIPv4(ip)
	if err != nil {
		return false
	}
	if !strings.Contains(rng, "-") {
		start, err := ParseIPv4(rng)
		if err != nil {
			return false
		}
		return ipInt == start
	}
	first, second, _ := strings.Cut(rng, "-")
	start, err := ParseIPv4(first)
	if err != nil {
		return false
	}
	end, err := ParseIPv4(second)
	if err != nil {
		return false
	}
	return ipInt >= start && ipInt <= end
}

// PortInRange reports whether port falls inside the port range rng,
// inclusive both ends.
func PortInRange(port int, rng string) bool {
	if !strings.Contains(rng, "-") {
		return port == atoi(rng)
	}
	first, second, _ := strings.Cut(rng, "-")
	return port >= atoi(first) && port <= atoi(second)
}

// atoi mimics C atoi: optional leading whitespace and sign, then the
// longest run of digits; anything else yields 0.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	sign := 1
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			sign = -1
		}
		i++
	}
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return sign * n
}
