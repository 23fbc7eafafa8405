// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package iq

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FindMatchingItems finds line items in snapshot data matching the query
func FindMatchingItems(snapshotData map[string]interface{}, query *ParsedQuery) []map[string]interface{} {
	order, ok := snapshotData["order"].(map[string]interface{})
	if !ok {
		return nil
	}
	items, ok := order["items"].([]interface{})
	if !ok {
		return nil
	}

	var matches []map[string]interface{}

	for _, item := range items {
		it, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		// Check category (if specified)
		if query.Category != "" {
			if cat, ok := it["category"].(string); !ok || cat != query.Category {
				continue
			}
		}

		// Check SKU (if specified)
		if query.SKU != "" {
			if sku, ok := it["sku"].(string); !ok || sku != query.SKU {
				continue
			}
		}

		// If we have picks, check slot
		if picks, ok := it["picks"].([]interface{}); ok {
			for _, pick := range picks {
				pk, ok := pick.(map[string]interface{})
				if !ok {
					continue
				}
				if query.Sub && pk["substituted"] != true {
					continue
				}
				if query.Slot != nil && !matchesSlot(pk, query.Slot) {
					continue
				}
				matches = append(matches, createItemMatch(it, pk))
			}
		}
	}

	return matches
}

// matchesSlot checks if a pick matches the specified slot
func matchesSlot(pick map[string]interface{}, querySlot interface{}) bool {
	slot, ok := pick["slot"]
	if !ok {
		// No slot means this is the only pick (slot 0)
		return querySlot == 0 || querySlot == "0"
	}

	switch v := querySlot.(type) {
	case int:
		if s, ok := slot.(float64); ok {
			return int(s) == v
		}
		if s, ok := slot.(int); ok {
			return s == v
		}
		// Also try string conversion
		if s, ok := slot.(string); ok {
			return s == strconv.Itoa(v)
		}
	case string:
		if s, ok := slot.(string); ok {
			// Direct string comparison for named slots like "backup"
			return s == v
		}
		// Also try numeric conversion
		if s, ok := slot.(float64); ok {
			return strconv.Itoa(int(s)) == v
		}
		if s, ok := slot.(int); ok {
			return strconv.Itoa(s) == v
		}
	}

	return false
}

// createItemMatch creates a flattened line item representation
func createItemMatch(item map[string]interface{}, pick map[string]interface{}) map[string]interface{} {
	// Create a combined view of item + pick
	result := make(map[string]interface{})

	// Copy item fields
	for k, v := range item {
		if k != "picks" {
			result[k] = v
		}
	}

	// Copy pick fields
	for k, v := range pick {
		result[k] = v
	}

	return result
}

// generateItemAddresses creates item addresses for matched line items
func generateItemAddresses(matches []map[string]interface{}) []string {
	var addresses []string

	for _, match := range matches {
		addr := buildItemAddress(match)
		addresses = append(addresses, addr)
	}

	return addresses
}

// buildItemAddress constructs an item address from line item data. The shape
// matches the flattened sq output: ~category.SKU[slot], with the tilde
// marking substituted picks.
func buildItemAddress(item map[string]interface{}) string {
	var addr strings.Builder

	if item["substituted"] == true {
		addr.WriteString("~")
	}

	if category, ok := item["category"].(string); ok && category != "" {
		addr.WriteString(category)
		addr.WriteString(".")
	}

	if sku, ok := item["sku"].(string); ok {
		addr.WriteString(sku)
	}

	if slot, ok := item["slot"]; ok {
		switch v := slot.(type) {
		case float64:
			addr.WriteString(fmt.Sprintf("[%d]", int(v)))
		case int:
			addr.WriteString(fmt.Sprintf("[%d]", v))
		case string:
			addr.WriteString(fmt.Sprintf("[%q]", v))
		}
	}

	return addr.String()
}

// ExtractAttribute extracts the specified attribute from a flattened line
// item match.
func ExtractAttribute(item map[string]interface{}, parsed *ParsedQuery) interface{} {
	if attrValue, exists := item[parsed.Attribute]; exists {
		return attrValue
	}
	return nil
}

// formatAttributeValue formats an attribute value for string output
func formatAttributeValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return "null"
	default:
		if jsonBytes, err := json.Marshal(v); err == nil {
			return string(jsonBytes)
		}
		return fmt.Sprintf("%v", v)
	}
}

// printJSON outputs data as formatted JSON
func printJSON(data interface{}) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Printf("Error formatting JSON: %s\n", err)
		return
	}
	fmt.Println(string(jsonBytes))
}
