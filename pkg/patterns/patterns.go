/*
Copyright © 2025 esadmctl authors
SPDX-License-Identifier: Apache-2.0
*/

// Package patterns implements the wildcard matching used for index selection:
// restore include/exclude lists and backing-index naming conventions.
package patterns

import "strings"

// Match checks if an index name matches a wildcard pattern.
// Supported forms:
//   - "prefix*" matches names starting with "prefix"
//   - "*suffix" matches names ending with "suffix"
//   - "*contains*" matches names containing "contains"
//   - "exact" matches names exactly
func Match(name, pattern string) bool {
	// No wildcard - exact match
	if !strings.Contains(pattern, "*") {
		return name == pattern
	}

	// *contains* - contains match
	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		substr := strings.Trim(pattern, "*")
		return strings.Contains(name, substr)
	}

	// *suffix - ends with match
	if strings.HasPrefix(pattern, "*") {
		suffix := strings.TrimPrefix(pattern, "*")
		return strings.HasSuffix(name, suffix)
	}

	// prefix* - starts with match
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(name, prefix)
	}

	return false
}

// MatchAny reports whether the name matches any of the given patterns.
func MatchAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if Match(name, p) {
			return true
		}
	}
	return false
}

// Filter returns the names matching any of the given patterns, preserving order.
func Filter(names []string, patterns []string) []string {
	var out []string
	for _, n := range names {
		if MatchAny(n, patterns) {
			out = append(out, n)
		}
	}
	return out
}

// FilterOut returns the names not matching any of the given patterns,
// preserving order.
func FilterOut(names []string, patterns []string) []string {
	var out []string
	for _, n := range names {
		if !MatchAny(n, patterns) {
			out = append(out, n)
		}
	}
	return out
}
