// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseSource parses a Source string and returns the resolved source and any
// optional ::store override. Remote sources (s3:// and http(s):// URLs) are
// passed through untouched. Local sources are made absolute and must exist
// and be a directory.
func ParseSource(source string) (string, string, error) {

	if source == "" {
		return "", "", os.ErrInvalid
	}

	var resolved, store string

	// First, split the spec to see if there is a ::store override.
	parts := strings.Split(source, "::")
	if len(parts) > 1 {
		store = parts[1]
	}

	// Remote sources are resolved by their backend, not the filesystem.
	if IsRemoteSource(parts[0]) {
		return parts[0], store, nil
	}

	// Now determine if the actual source (parts[0]) is absolute or relative.
	// If it is relative, make it absolute.
	if !strings.HasPrefix(parts[0], "/") {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		resolved = filepath.Join(cwd, parts[0])
	} else {
		resolved = parts[0]
	}

	// If the source is not a directory, return an error.
	if r, err := os.Stat(resolved); err != nil {
		return "", "", err
	} else if !r.IsDir() {
		return "", "", os.ErrInvalid
	}

	return resolved, store, nil
}

// IsRemoteSource reports whether the source spec points at a remote backend
// rather than the local filesystem.
func IsRemoteSource(source string) bool {
	return strings.HasPrefix(source, "s3://") ||
		strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://")
}
