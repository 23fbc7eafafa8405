// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot loads order snapshot documents from whichever backend the
// source spec resolves to, transparently decrypting passphrase-protected
// exports.
package snapshot
