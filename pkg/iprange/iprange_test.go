// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause
package iprange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseIPv4 tests strict dotted-quad parsing
func TestParseIPv4(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expect      uint32
		expectError bool
	}{
		{
			name:   "simple address",
			input:  "10.0.0.1",
			expect: 0x0A000001,
		},
		{
			name:   "all zeros",
			input:  "0.0.0.0",
			expect: 0,
		},
		{
			name:   "broadcast",
			input:  "255.255.255.255",
			expect: 0xFFFFFFFF,
		},
		{
			name:   "mixed octets",
			input:  "192.168.1.100",
			expect: 0xC0A80164,
		},
		{
			name:        "octet out of range",
			input:       "256.1.1.1",
			expectError: true,
		},
		{
			name:        "not numeric",
			input:       "not.an.ip",
			expectError: true,
		},
		{
			name:        "too few octets",
			input:       "192.168.1",
			expectError: true,
		},
		{
			name:        "too many octets",
			input:       "1.2.3.4.5",
			expectError: true,
		},
		{
			name:        "leading zero",
			input:       "10.0.0.01",
			expectError: true,
		},
		{
			name:        "empty octet",
			input:       "10..0.1",
			expectError: true,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "ipv6 rejected",
			input:       "::1",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseIPv4(tc.input)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}
}

// TestIsValidAddressRange tests single and hyphenated address ranges
func TestIsValidAddressRange(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		valid bool
	}{
		{"single address", "10.0.0.1", true},
		{"address range", "10.0.0.1-10.0.0.10", true},
		{"inverted range is syntactically valid", "10.0.0.10-10.0.0.1", true},
		{"equal bounds", "10.0.0.1-10.0.0.1", true},
		{"bad start", "300.0.0.1-10.0.0.10", false},
		{"bad end", "10.0.0.1-10.0.0.999", false},
		{"missing end", "10.0.0.1-", false},
		{"garbage", "hello", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidAddressRange(tc.input))
		})
	}
}

// TestIsValidPortRange tests port range validation, including the
// strict start < end requirement for the hyphenated form.
func TestIsValidPortRange(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		valid bool
	}{
		{"single port", "80", true},
		{"port zero", "0", true},
		{"max port", "65535", true},
		{"above max", "65536", false},
		{"ascending range", "80-81", true},
		{"wide range", "0-65535", true},
		{"equal bounds rejected", "80-80", false},
		{"descending range rejected", "81-80", false},
		{"end above max", "80-70000", false},
		// atoi semantics: non-numeric text parses as 0. Inherited from
		// the original server; see the package documentation.
		{"non-numeric single port parses as 0", "abc", true},
		{"non-numeric range start parses as 0", "abc-80", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidPortRange(tc.input))
		})
	}
}

// TestAddressInRange tests inclusive membership at and around the
// range boundaries.
func TestAddressInRange(t *testing.T) {
	testCases := []struct {
		name  string
		ip    string
		rng   string
		match bool
	}{
		{"exact single match", "10.0.0.1", "10.0.0.1", true},
		{"single mismatch", "10.0.0.2", "10.0.0.1", false},
		{"start boundary inclusive", "10.0.0.1", "10.0.0.1-10.0.0.10", true},
		{"end boundary inclusive", "10.0.0.10", "10.0.0.1-10.0.0.10", true},
		{"inside range", "10.0.0.5", "10.0.0.1-10.0.0.10", true},
		{"below range", "10.0.0.0", "10.0.0.1-10.0.0.10", false},
		{"above range", "10.0.0.11", "10.0.0.1-10.0.0.10", false},
		{"crosses octet boundary", "10.0.1.0", "10.0.0.1-10.0.2.0", true},
		{"inverted range matches nothing", "10.0.0.5", "10.0.0.10-10.0.0.1", false},
		{"invalid ip", "999.0.0.1", "10.0.0.1-10.0.0.10", false},
		{"invalid range side", "10.0.0.5", "10.0.0.1-bogus", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.match, AddressInRange(tc.ip, tc.rng))
		})
	}
}

// TestPortInRange tests inclusive port membership
func TestPortInRange(t *testing.T) {
	testCases := []struct {
		name  string
		port  int
		rng   string
		match bool
	}{
		{"exact single match", 80, "80", true},
		{"single mismatch", 81, "80", false},
		{"start boundary inclusive", 8000, "8000-8010", true},
		{"end boundary inclusive", 8010, "8000-8010", true},
		{"inside range", 8005, "8000-8010", true},
		{"below range", 7999, "8000-8010", false},
		{"above range", 8011, "8000-8010", false},
		{"non-numeric range matches port 0", 0, "abc", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.match, PortInRange(tc.port, tc.rng))
		})
	}
}

// TestAtoi pins the C atoi semantics the range parsers rely on
func TestAtoi(t *testing.T) {
	assert.Equal(t, 80, atoi("80"))
	assert.Equal(t, -5, atoi("-5"))
	assert.Equal(t, 80, atoi("80abc"))
	assert.Equal(t, 0, atoi("abc"))
	assert.Equal(t, 0, atoi(""))
	assert.Equal(t, 7, atoi("  +7"))
}
