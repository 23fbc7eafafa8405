// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws wraps SDK config and client construction for the s3 snapshot
// export backend.
package aws
