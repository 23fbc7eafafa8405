// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package svutil offers snapshot version discovery helpers. Given a list of
// snapshot versions, it can find specific versions based on user criteria -
// relative CSV~N specs, serial numbers, version IDs, or local files.
package svutil
