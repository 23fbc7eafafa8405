// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChopPrefix_EmptyDataset(t *testing.T) {
	data := []map[string]interface{}{}
	chopPrefix(data)
	assert.Equal(t, 0, len(data))
}

func TestChopPrefix_NoStringValues(t *testing.T) {
	data := []map[string]interface{}{
		{"count": 1},
		{"count": 2},
	}
	// No string values to process
	chopPrefix(data)
	assert.Equal(t, 1, data[0]["count"])
	assert.Equal(t, 2, data[1]["count"])
}

func TestChopPrefix_SingleValueAllCommonSegments(t *testing.T) {
	data := []map[string]interface{}{
		{"item": "grocery.dairy.milk.whole"},
	}
	// Single entry: all its segments are trivially "common"
	// But chopping 2 segments would leave 2, which is allowed
	chopPrefix(data)
	assert.Equal(t, "..milk.whole", data[0]["item"])
}

func TestChopPrefix_TwoCommonLeadingSegments(t *testing.T) {
	data := []map[string]interface{}{
		{"item": "grocery.dairy.milk1.x"},
		{"item": "grocery.dairy.milk2.x"},
		{"item": "grocery.dairy.milk3.x"},
	}
	// All entries have "grocery.dairy" as leading segments, so chop should
	// remove it
	chopPrefix(data)
	assert.Equal(t, "..milk1.x", data[0]["item"])
	assert.Equal(t, "..milk2.x", data[1]["item"])
	assert.Equal(t, "..milk3.x", data[2]["item"])
}

func TestChopPrefix_DifferentThirdSegment(t *testing.T) {
	data := []map[string]interface{}{
		{"item": "grocery.dairy.milk.sku1"},
		{"item": "grocery.dairy.yogurt.sku2"},
		{"item": "grocery.dairy.butter.sku3"},
	}
	// All have "grocery.dairy" in common, but differ on third segment
	// So only "grocery.dairy" is removed
	chopPrefix(data)
	assert.Equal(t, "..milk.sku1", data[0]["item"])
	assert.Equal(t, "..yogurt.sku2", data[1]["item"])
	assert.Equal(t, "..butter.sku3", data[2]["item"])
}

func TestChopPrefix_OneCommonSegmentOnly_NoChop(t *testing.T) {
	data := []map[string]interface{}{
		{"item": "grocery.dairy.milk"},
		{"item": "grocery.bakery.bread"},
		{"item": "grocery.produce.apples"},
	}
	// Only "grocery" is common, but we require at least 2, so no change
	chopPrefix(data)
	assert.Equal(t, "grocery.dairy.milk", data[0]["item"])
	assert.Equal(t, "grocery.bakery.bread", data[1]["item"])
	assert.Equal(t, "grocery.produce.apples", data[2]["item"])
}

func TestChopPrefix_NoCommonSegments_NoChop(t *testing.T) {
	data := []map[string]interface{}{
		{"item": "a.b.c"},
		{"item": "x.y.z"},
		{"item": "m.n.o"},
	}
	// No common leading segments
	chopPrefix(data)
	assert.Equal(t, "a.b.c", data[0]["item"])
	assert.Equal(t, "x.y.z", data[1]["item"])
	assert.Equal(t, "m.n.o", data[2]["item"])
}

func TestChopPrefix_MultipleStringFields(t *testing.T) {
	data := []map[string]interface{}{
		{"item": "grocery.dairy.milk1.x", "category": "grocery.dairy.milk"},
		{"item": "grocery.dairy.milk2.x", "category": "grocery.dairy.yogurt"},
		{"item": "grocery.dairy.milk3.x", "category": "grocery.dairy.butter"},
	}
	// "item" field can be chopped (4 segments, removing 2 leaves 2)
	// "category" field can't be chopped (3 segments, removing 2 would leave 1)
	chopPrefix(data)
	assert.Equal(t, "..milk1.x", data[0]["item"])
	assert.Equal(t, "grocery.dairy.milk", data[0]["category"]) // unchanged
	assert.Equal(t, "..milk2.x", data[1]["item"])
	assert.Equal(t, "grocery.dairy.yogurt", data[1]["category"]) // unchanged
	assert.Equal(t, "..milk3.x", data[2]["item"])
	assert.Equal(t, "grocery.dairy.butter", data[2]["category"]) // unchanged
}

func TestChopPrefix_MixedStringAndNonString(t *testing.T) {
	data := []map[string]interface{}{
		{"item": "grocery.dairy.milk1.whole", "qty": 123},
		{"item": "grocery.dairy.milk2.skim", "qty": 456},
	}
	// Non-string values are ignored during processing
	chopPrefix(data)
	assert.Equal(t, "..milk1.whole", data[0]["item"])
	assert.Equal(t, 123, data[0]["qty"]) // unchanged
	assert.Equal(t, "..milk2.skim", data[1]["item"])
	assert.Equal(t, 456, data[1]["qty"]) // unchanged
}

func TestChopPrefix_ExactMatchNoRemainder(t *testing.T) {
	data := []map[string]interface{}{
		{"item": "grocery.dairy"},
		{"item": "grocery.dairy"},
	}
	// Common segments are "grocery.dairy" (2 segments) with no remainder
	// The prefix "grocery.dairy." won't match because neither value has a dot
	// after "dairy"
	chopPrefix(data)
	assert.Equal(t, "grocery.dairy", data[0]["item"]) // unchanged
	assert.Equal(t, "grocery.dairy", data[1]["item"]) // unchanged
}

func TestChopPrefix_DifferentLengths_PartialMatch(t *testing.T) {
	data := []map[string]interface{}{
		{"item": "grocery.dairy.x.y"},
		{"item": "grocery.dairy.milk.sku1"},
		{"item": "grocery.dairy.yogurt.sku2"},
	}
	// Common segments are "grocery.dairy", all entries have at least 4
	// segments so chopping "grocery.dairy" leaves at least 2 segments
	chopPrefix(data)
	assert.Equal(t, "..x.y", data[0]["item"])
	assert.Equal(t, "..milk.sku1", data[1]["item"])
	assert.Equal(t, "..yogurt.sku2", data[2]["item"])
}
