// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller traverses order snapshots and API payloads to extract
// useful views for commands that need deeper inspection.
package driller
