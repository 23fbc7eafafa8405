// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package iq

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsedQuery represents a parsed item-address query
type ParsedQuery struct {
	Sub       bool        // Restrict to substituted picks
	Category  string      // Product category, e.g., "dairy_milk"
	SKU       string      // Product SKU, e.g., "SKU-1001"
	Slot      interface{} // Pick slot (int, string, or nil for all)
	Attribute string      // Attribute name, e.g., "price", "qty"
}

// ProcessQuery routes queries to appropriate handlers based on syntax
func ProcessQuery(snapshotData map[string]interface{}, query string) {
	// Check for function evaluation mode
	if strings.HasPrefix(query, "/") {
		// Force function mode with leading /
		expression := strings.TrimPrefix(query, "/")
		result := evaluateFunction(expression, snapshotData)
		fmt.Println(result)
		return
	}

	// Check for balanced parentheses (likely function)
	if hasBalancedParens(query) {
		// Assume function mode
		result := evaluateFunction(query, snapshotData)
		fmt.Println(result)
		return
	}

	// Normal query mode
	jsonMode := strings.HasPrefix(query, ".")
	if jsonMode {
		query = strings.TrimPrefix(query, ".")
	}

	// Handle special queries
	if result := handleSpecialQueries(snapshotData, query); result != nil {
		if jsonMode {
			printJSON(result)
		} else {
			fmt.Println(result)
		}
		return
	}

	// Parse the query
	parsed, err := ParseQuery(query)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		return
	}

	// Find matching line items
	matches := FindMatchingItems(snapshotData, parsed)

	// Handle attribute extraction if specified
	if parsed.Attribute != "" {
		if jsonMode {
			// Output JSON for attribute values
			for _, match := range matches {
				attrValue := ExtractAttribute(match, parsed)
				if attrValue != nil {
					printJSON(attrValue)
				}
			}
		} else {
			// Output attribute values as strings
			for _, match := range matches {
				attrValue := ExtractAttribute(match, parsed)
				if attrValue != nil {
					fmt.Println(formatAttributeValue(attrValue))
				}
			}
		}
	} else {
		// Normal item output (no attribute specified)
		if jsonMode {
			// Output JSON for all matches
			for _, match := range matches {
				printJSON(match)
			}
		} else {
			// Output list of item addresses
			addresses := generateItemAddresses(matches)
			for _, addr := range addresses {
				fmt.Println(addr)
			}
		}
	}
}

// hasBalancedParens checks if a string has balanced parentheses
func hasBalancedParens(s string) bool {
	openCount := 0
	closeCount := 0

	for _, char := range s {
		switch char {
		case '(':
			openCount++
		case ')':
			closeCount++
		}
	}

	// Must have at least one pair of parens and they must be balanced
	return openCount > 0 && openCount == closeCount
}

// handleSpecialQueries handles built-in special queries
func handleSpecialQueries(snapshotData map[string]interface{}, query string) interface{} {
	switch query {
	case "serial":
		if val, ok := snapshotData["serial"]; ok {
			return val
		}
		return "not found"
	case "version":
		if val, ok := snapshotData["version"]; ok {
			return val
		}
		return "not found"
	case "exporter_version":
		if val, ok := snapshotData["exporter_version"]; ok {
			return val
		}
		return "not found"
	}

	// Handle order header queries like "order.status"
	if strings.HasPrefix(query, "order.") {
		fieldName := strings.TrimPrefix(query, "order.")
		if order, ok := snapshotData["order"].(map[string]interface{}); ok {
			if val, ok := order[fieldName]; ok {
				return val
			}
		}
		return fmt.Sprintf("order field '%s' not found", fieldName)
	}

	return nil
}

// ParseQuery parses an item-address query string into structured components
func ParseQuery(query string) (*ParsedQuery, error) {
	parsed := &ParsedQuery{}

	// Split the query correctly, respecting quoted strings
	parts := smartSplit(query, ".")
	pos := 0

	// Check for substituted-only mode
	if pos < len(parts) && parts[pos] == "sub" {
		parsed.Sub = true
		pos++
	}

	// Get category (optional)
	if pos < len(parts) {
		catAndSlot := parts[pos]
		// Check for slot notation
		if idx := strings.Index(catAndSlot, "["); idx != -1 {
			parsed.Category = catAndSlot[:idx]
			slotStr := catAndSlot[idx+1 : len(catAndSlot)-1]
			parsed.Slot = parseSlot(slotStr)
		} else {
			parsed.Category = catAndSlot
		}
		pos++
	}

	// Get SKU (optional)
	if pos < len(parts) {
		skuAndSlot := parts[pos]
		// Check for slot notation
		if idx := strings.Index(skuAndSlot, "["); idx != -1 {
			parsed.SKU = skuAndSlot[:idx]
			slotStr := skuAndSlot[idx+1 : len(skuAndSlot)-1]
			parsed.Slot = parseSlot(slotStr)
		} else {
			parsed.SKU = skuAndSlot
		}
		pos++
	}

	// Get attribute (optional)
	if pos < len(parts) {
		parsed.Attribute = parts[pos]
		pos++
	}

	// Ensure we've consumed all parts
	if pos < len(parts) {
		return nil, fmt.Errorf("unexpected extra parts in query: %v", parts[pos:])
	}

	return parsed, nil
}

// smartSplit splits a string by delimiter but respects quoted strings
func smartSplit(s, delimiter string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	i := 0

	for i < len(s) {
		switch {
		case s[i] == '"':
			inQuotes = !inQuotes
			current.WriteByte(s[i])
			i++
		case !inQuotes && i+len(delimiter) <= len(s) && s[i:i+len(delimiter)] == delimiter:
			parts = append(parts, current.String())
			current.Reset()
			i += len(delimiter)
		default:
			current.WriteByte(s[i])
			i++
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// parseSlot parses a slot string into appropriate type
func parseSlot(slotStr string) interface{} {
	// Try to parse as integer
	if i, err := strconv.Atoi(slotStr); err == nil {
		return i
	}

	// Try to parse as quoted string
	if strings.HasPrefix(slotStr, `"`) && strings.HasSuffix(slotStr, `"`) {
		return slotStr[1 : len(slotStr)-1]
	}

	// Return as string
	return slotStr
}
