// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package highlight tracks which parts of a JSON document changed between
// successive snapshots of the same entity. Each changed path is flagged for a
// fixed window of time so a renderer can pulse recently-modified fields and
// let the flag age out on its own.
package highlight
