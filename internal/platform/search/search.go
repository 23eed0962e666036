// Package search holds the console's client-side filter predicates.
// The backing store has no query language or server-side filtering, so
// every list view filters its flattened records in memory.
package search

import "strings"

// All is the status-filter sentinel that matches every record. The
// sentinel itself is case-sensitive; status values are not.
const All = "All"

// Term reports whether term is a case-insensitive substring of any of
// the given display fields. An empty term matches everything.
func Term(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Status reports whether a record's status passes the status filter.
func Status(filter, status string) bool {
	if filter == All {
		return true
	}
	return strings.EqualFold(filter, status)
}
