// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package skuname

import (
	"testing"
)

func TestIsRedundant(t *testing.T) {
	tests := []struct {
		name     string
		category string
		prodName string
		expected bool
	}{
		// Token equality tests - name part matches category token exactly.
		{
			name:     "milk token in name",
			category: "dairy_milk",
			prodName: "milk_whole_gallon",
			expected: true,
		},
		{
			name:     "dairy token in name",
			category: "dairy_milk",
			prodName: "dairy blend",
			expected: true,
		},
		{
			name:     "produce token in name",
			category: "produce_fruit",
			prodName: "fresh produce pack",
			expected: true,
		},
		{
			name:     "bakery token in name",
			category: "bakery_bread",
			prodName: "Bakery Roll 6ct",
			expected: true,
		},
		// Substring tests - category token appears as substring in name.
		{
			name:     "bread as substring with dash separator",
			category: "bakery_bread",
			prodName: "sour-bread-loaf",
			expected: true,
		},
		{
			name:     "milk jammed without separators",
			category: "dairy_milk",
			prodName: "OatmilkCreamer",
			expected: true,
		},
		// CamelCase boundary tests.
		{
			name:     "camelCase name with category token",
			category: "frozen_pizza",
			prodName: "PartyPizzaSupreme",
			expected: true,
		},
		// Negative tests.
		{
			name:     "clean name",
			category: "dairy_milk",
			prodName: "Whole Gallon 2%",
			expected: false,
		},
		{
			name:     "unrelated name",
			category: "produce_fruit",
			prodName: "Honeycrisp 3lb Bag",
			expected: false,
		},
		{
			name:     "empty category",
			category: "",
			prodName: "Whole Gallon",
			expected: false,
		},
		{
			name:     "empty name",
			category: "dairy_milk",
			prodName: "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsRedundant(tt.category, tt.prodName)
			if got != tt.expected {
				t.Errorf("IsRedundant(%q, %q) = %v, want %v",
					tt.category, tt.prodName, got, tt.expected)
			}
		})
	}
}
