// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package skuname

import (
	"regexp"
	"strings"
)

// IsRedundant returns true if any component of the product category (split by
// '_') appears in the display name of that product. Matching is
// case-insensitive and checks both substring containment and token equality
// when the name is split by non-alphanumeric chars and camelCase boundaries.
// Merchandising wants these flagged: "Dairy Milk 2%" under dairy_milk tells a
// shopper nothing the aisle didn't.
func IsRedundant(category string, name string) bool {
	if category == "" || name == "" {
		return false
	}

	categoryLower := strings.ToLower(category)
	nameLower := strings.ToLower(name)

	// Split the category into a slice of tokens.
	categoryTokens := strings.Split(categoryLower, "_")

	// Split the name by:
	// 1. Non-alphanumeric separators (dashes, dots, underscores, etc.)
	// 2. CamelCase boundaries (transition from lowercase to uppercase)
	// First replace camelCase boundaries with a delimiter, then split by non-alphanumeric.
	camelCaseRe := regexp.MustCompile(`([a-z])([A-Z])`)
	nameWithDelim := camelCaseRe.ReplaceAllString(name, "${1}_${2}")

	splitRe := regexp.MustCompile(`[^a-z0-9]+`)
	nameParts := splitRe.Split(strings.ToLower(nameWithDelim), -1)

	// Iterate over each category token and see if it matches any name token.
	// If so, the name is redundant.
	for _, tok := range categoryTokens {
		if tok == "" {
			continue
		}

		// If the token appears as a whole name part, it's redundant.
		for _, p := range nameParts {
			if p == tok {
				// Redundant - bail out.
				return true
			}
		}

		// Also treat any substring occurrence as a match. Covers cases like
		// category "dairy_milk" with name "OatmilkCreamer", where the token is
		// jammed without separators.
		if strings.Contains(nameLower, tok) {
			// Redundant - bail out.
			return true
		}
	}

	// Not redundant.
	return false
}
