// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package backend implements the snapshot source integrations (remote API,
// local export dirs, and s3) and exposes common behaviors for querying
// snapshots and snapshot versions.
package backend
