// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/fmctl/fmctl/internal/config"
)

// SourceSpec holds the resolved snapshot source and optional store override
// used when evaluating backends. Source may be a local directory of snapshot
// exports, an s3:// object URL, or an http(s):// API endpoint.
type SourceSpec struct {
	Source string
	Store  string
}

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the resolved snapshot source specification,
// and the starting working directory.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	SourceSpec
	StartingDir string
}
