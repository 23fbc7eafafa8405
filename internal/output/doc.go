// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output shapes query results (orders, products, snapshots) for
// emission as a lipgloss table, json, yaml, or raw payloads.
package output
