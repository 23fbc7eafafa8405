// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"reflect"
	"testing"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"fmctl", "sq"},
			expected: []string{"fmctl", "sq"},
		},
		{
			name:     "no duplicates",
			args:     []string{"fmctl", "sq", "--output", "text", "--titles"},
			expected: []string{"fmctl", "sq", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"fmctl", "sq", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"fmctl", "sq", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"fmctl", "sq", "--titles", "--debug", "--titles"},
			expected: []string{"fmctl", "sq", "--debug", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"fmctl", "sq", "--output=json", "--titles", "--output=text"},
			expected: []string{"fmctl", "sq", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"fmctl", "sq", "--output=json", "--output", "text"},
			expected: []string{"fmctl", "sq", "--output", "text"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"fmctl", "oq", "--endpoint", "a.b.c", "--store", "foo", "--endpoint", "x.y.z", "--store", "bar"},
			expected: []string{"fmctl", "oq", "--endpoint", "x.y.z", "--store", "bar"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"fmctl", "sq", "/path/to/exports", "--output", "json", "--output", "text"},
			expected: []string{"fmctl", "sq", "/path/to/exports", "--output", "text"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"fmctl", "sq", "-o", "json", "-o", "text"},
			expected: []string{"fmctl", "sq", "-o", "text"},
		},
		{
			name:     "different flags not affected",
			args:     []string{"fmctl", "sq", "--color", "--no-color"},
			expected: []string{"fmctl", "sq", "--color", "--no-color"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"fmctl", "sq", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"fmctl", "sq", "--output", "c"},
		},
		{
			name:     "flag at end with no value treated as boolean",
			args:     []string{"fmctl", "sq", "--titles", "--debug", "--titles"},
			expected: []string{"fmctl", "sq", "--debug", "--titles"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := deduplicateFlags(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("deduplicateFlags(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestDeduplicateFlagsPreservesOrder(t *testing.T) {
	// Ensure non-duplicate flags maintain their relative order.
	args := []string{"fmctl", "sq", "--alpha", "--beta", "--gamma"}
	result := deduplicateFlags(args)
	expected := []string{"fmctl", "sq", "--alpha", "--beta", "--gamma"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Order not preserved: got %v, want %v", result, expected)
	}
}

func TestDeduplicateFlagsWithPositionalAfterFlags(t *testing.T) {
	// Positional args after flags should be preserved.
	args := []string{"fmctl", "sq", "--output", "json", "/path", "--output", "text"}
	result := deduplicateFlags(args)
	expected := []string{"fmctl", "sq", "/path", "--output", "text"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestInjectConfigSet(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		key       string
		insertIdx int
		configVal []string
		expected  []string
	}{
		{
			name:      "empty config returns args unchanged",
			args:      []string{"fmctl", "sq", "--titles"},
			key:       "defaults",
			insertIdx: 2,
			configVal: nil,
			expected:  []string{"fmctl", "sq", "--titles"},
		},
		{
			name:      "single entry injected",
			args:      []string{"fmctl", "sq", "--titles"},
			key:       "defaults",
			insertIdx: 2,
			configVal: []string{"--debug"},
			expected:  []string{"fmctl", "sq", "--debug", "--titles"},
		},
		{
			name:      "multi-word entry split",
			args:      []string{"fmctl", "sq", "--titles"},
			key:       "defaults",
			insertIdx: 2,
			configVal: []string{"--output text"},
			expected:  []string{"fmctl", "sq", "--output", "text", "--titles"},
		},
		{
			name:      "multiple entries",
			args:      []string{"fmctl", "sq"},
			key:       "defaults",
			insertIdx: 2,
			configVal: []string{"--debug", "--output json"},
			expected:  []string{"fmctl", "sq", "--debug", "--output", "json"},
		},
		{
			name:      "insert at index 3",
			args:      []string{"fmctl", "sq", "/path/to/exports", "--titles"},
			key:       "defaults",
			insertIdx: 3,
			configVal: []string{"--debug"},
			expected:  []string{"fmctl", "sq", "/path/to/exports", "--debug", "--titles"},
		},
		{
			name:      "complex multi-word entries",
			args:      []string{"fmctl", "oq"},
			key:       "oq.defaults",
			insertIdx: 2,
			configVal: []string{"--endpoint https://api.freshmart.io", "--store store-044"},
			expected:  []string{"fmctl", "oq", "--endpoint", "https://api.freshmart.io", "--store", "store-044"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := injectConfigSetTestable(tt.args, tt.configVal, tt.insertIdx)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("injectConfigSet() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// injectConfigSetTestable is a test-friendly version that accepts config values
// directly instead of reading from global config.
func injectConfigSetTestable(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		for _, field := range splitFields(entry) {
			expanded = append(expanded, field)
		}
	}

	return append(args[:insertIdx], append(expanded, args[insertIdx:]...)...)
}

// splitFields splits a string by whitespace, matching strings.Fields behavior.
func splitFields(s string) []string {
	var result []string
	start := -1

	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if start >= 0 {
				result = append(result, s[start:i])
				start = -1
			}
		} else {
			if start < 0 {
				start = i
			}
		}
	}

	if start >= 0 {
		result = append(result, s[start:])
	}

	return result
}
