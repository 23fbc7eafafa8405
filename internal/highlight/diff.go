// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package highlight

import "strconv"

// absent marks a position that exists in one snapshot but not the other. It
// is never equal to any JSON value, including null.
type absent struct{}

// Diff returns the path keys at which old and new differ. Objects are
// compared per-key over the union of keys, arrays positionally out to the
// longer length. A scalar pair or a kind mismatch (object vs array, container
// vs scalar, value vs absent) is reported as a single leaf path with no
// further recursion.
func Diff(oldNode, newNode any) []string {
	var changed []string
	diffNodes(oldNode, newNode, "", &changed)
	return changed
}

func diffNodes(oldNode, newNode any, prefix string, changed *[]string) {
	oldObj, oldIsObj := oldNode.(map[string]interface{})
	newObj, newIsObj := newNode.(map[string]interface{})
	if oldIsObj && newIsObj {
		for key := range oldObj {
			diffNodes(oldObj[key], childOf(newObj, key), joinPath(prefix, key), changed)
		}
		// Keys only the new side has.
		for key := range newObj {
			if _, ok := oldObj[key]; !ok {
				diffNodes(absent{}, newObj[key], joinPath(prefix, key), changed)
			}
		}
		return
	}

	oldArr, oldIsArr := oldNode.([]interface{})
	newArr, newIsArr := newNode.([]interface{})
	if oldIsArr && newIsArr {
		n := len(oldArr)
		if len(newArr) > n {
			n = len(newArr)
		}
		for i := 0; i < n; i++ {
			diffNodes(elementOf(oldArr, i), elementOf(newArr, i),
				joinPath(prefix, strconv.Itoa(i)), changed)
		}
		return
	}

	if !leafEqual(oldNode, newNode) {
		*changed = append(*changed, prefix)
	}
}

// leafEqual compares two values that the recursion has bottomed out on.
// By this point at most one side can be a container, and containers never
// equal anything at the leaf level.
func leafEqual(a, b any) bool {
	_, aAbsent := a.(absent)
	_, bAbsent := b.(absent)
	if aAbsent || bAbsent {
		return aAbsent && bAbsent
	}

	if isContainer(a) || isContainer(b) {
		return false
	}

	// JSON numbers may arrive as float64 or as native ints when the snapshot
	// was built in-process. Compare numerically so 30 == 30.0.
	if fa, aNum := toFloat(a); aNum {
		fb, bNum := toFloat(b)
		return bNum && fa == fb
	}

	return a == b
}

func childOf(obj map[string]interface{}, key string) any {
	if v, ok := obj[key]; ok {
		return v
	}
	return absent{}
}

func elementOf(arr []interface{}, i int) any {
	if i < len(arr) {
		return arr[i]
	}
	return absent{}
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	}
	return false
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
