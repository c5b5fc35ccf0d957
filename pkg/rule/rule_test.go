// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause
package rule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStore_AddAndDuplicate tests rule uniqueness: the second add of an
// identical (ip_range, port_range) pair is rejected and changes nothing.
func TestStore_AddAndDuplicate(t *testing.T) {
	store := NewStore()

	err := store.Add("10.0.0.1", "80")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	err = store.Add("10.0.0.1", "80")
	assert.ErrorIs(t, err, ErrRuleExists)
	assert.Equal(t, 1, store.Len())

	// Same IP range with a different port range is a distinct rule
	err = store.Add("10.0.0.1", "81")
	assert.NoError(t, err)
	assert.Equal(t, 2, store.Len())
}

// TestStore_AddInvalid tests rejection of malformed ranges
func TestStore_AddInvalid(t *testing.T) {
	store := NewStore()

	assert.ErrorIs(t, store.Add("256.1.1.1", "80"), ErrInvalidRule)
	assert.ErrorIs(t, store.Add("10.0.0.1", "80-80"), ErrInvalidRule)
	assert.ErrorIs(t, store.Add("10.0.0.1", "90-80"), ErrInvalidRule)
	assert.ErrorIs(t, store.Add("not.an.ip", "80"), ErrInvalidRule)
	assert.Equal(t, 0, store.Len())
}

// TestStore_CheckRecordsHistory tests that an accepted check appends to
// the matching rule's query history
func TestStore_CheckRecordsHistory(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("10.0.0.1-10.0.0.10", "8000-8010"))

	allowed, err := store.Check("10.0.0.5", 8005)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = store.Check("10.0.0.11", 8005)
	require.NoError(t, err)
	assert.False(t, allowed)

	rules := store.Rules()
	require.Len(t, rules, 1)
	require.Len(t, rules[0].Queries, 1)
	assert.Equal(t, Query{IP: "10.0.0.5", Port: 8005}, rules[0].Queries[0])
}

// TestStore_CheckIllegal tests that malformed queries never touch the store
func TestStore_CheckIllegal(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("10.0.0.1", "80"))

	_, err := store.Check("999.0.0.1", 80)
	assert.ErrorIs(t, err, ErrIllegalQuery)

	_, err = store.Check("10.0.0.1", 70000)
	assert.ErrorIs(t, err, ErrIllegalQuery)

	_, err = store.Check("10.0.0.1", -1)
	assert.ErrorIs(t, err, ErrIllegalQuery)

	rules := store.Rules()
	require.Len(t, rules, 1)
	assert.Empty(t, rules[0].Queries)
}

// TestStore_FirstMatchWins tests that a check matching two overlapping
// rules records history only on the earliest-added one
func TestStore_FirstMatchWins(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("10.0.0.1-10.0.0.20", "80-90"))
	require.NoError(t, store.Add("10.0.0.1-10.0.0.10", "80-85"))

	allowed, err := store.Check("10.0.0.5", 82)
	require.NoError(t, err)
	assert.True(t, allowed)

	rules := store.Rules()
	require.Len(t, rules, 2)
	assert.Len(t, rules[0].Queries, 1)
	assert.Empty(t, rules[1].Queries)
}

// TestStore_DeleteCompacts tests deletion preserves the relative order
// of surviving rules
func TestStore_DeleteCompacts(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("10.0.0.1", "80"))
	require.NoError(t, store.Add("10.0.0.2", "81"))
	require.NoError(t, store.Add("10.0.0.3", "82"))

	require.NoError(t, store.Delete("10.0.0.2", "81"))

	rules := store.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "10.0.0.1", rules[0].IPRange)
	assert.Equal(t, "10.0.0.3", rules[1].IPRange)
}

// TestStore_DeleteErrors tests the distinct invalid and not-found cases
func TestStore_DeleteErrors(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("10.0.0.1", "80"))

	assert.ErrorIs(t, store.Delete("not.an.ip", "80"), ErrInvalidRule)
	assert.ErrorIs(t, store.Delete("10.0.0.2", "80"), ErrRuleNotFound)

	// Delete matches on the exact range strings, not on overlap
	assert.ErrorIs(t, store.Delete("10.0.0.1-10.0.0.1", "80"), ErrRuleNotFound)
	assert.Equal(t, 1, store.Len())
}

// TestStore_HistoryDoesNotSurviveReAdd tests the delete/add cycle:
// re-adding a deleted rule yields a fresh rule with empty history
func TestStore_HistoryDoesNotSurviveReAdd(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("10.0.0.1", "80"))

	allowed, err := store.Check("10.0.0.1", 80)
	require.NoError(t, err)
	require.True(t, allowed)

	require.NoError(t, store.Delete("10.0.0.1", "80"))
	require.NoError(t, store.Add("10.0.0.1", "80"))

	rules := store.Rules()
	require.Len(t, rules, 1)
	assert.Empty(t, rules[0].Queries)
}

// TestStore_RulesIsSnapshot tests that Rules returns a deep copy
func TestStore_RulesIsSnapshot(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("10.0.0.1", "80"))

	snapshot := store.Rules()
	snapshot[0].IPRange = "changed"
	snapshot[0].Queries = append(snapshot[0].Queries, Query{IP: "1.2.3.4", Port: 1})

	rules := store.Rules()
	assert.Equal(t, "10.0.0.1", rules[0].IPRange)
	assert.Empty(t, rules[0].Queries)
}

// TestStore_InsertionOrderPreserved tests listing order across many adds
func TestStore_InsertionOrderPreserved(t *testing.T) {
	store := NewStore()
	for i := 0; i < 20; i++ {
		require.NoError(t, store.Add(fmt.Sprintf("10.0.%d.1", i), "80"))
	}

	rules := store.Rules()
	require.Len(t, rules, 20)
	for i, r := range rules {
		assert.Equal(t, fmt.Sprintf("10.0.%d.1", i), r.IPRange)
	}
}
