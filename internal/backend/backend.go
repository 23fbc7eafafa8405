// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/api"
	"github.com/fmctl/fmctl/internal/backend/local"
	"github.com/fmctl/fmctl/internal/backend/remote"
	"github.com/fmctl/fmctl/internal/backend/s3"
	"github.com/fmctl/fmctl/internal/meta"
)

// Backend abstracts the snapshot sources needed by the application: the
// FreshMart API, a local export directory, or a versioned S3 object.
type Backend interface {
	// Snapshot returns the CSV~0 snapshot document.
	Snapshot() ([]byte, error)
	// Snapshots returns the snapshot documents specified by the specs.
	Snapshots(...string) ([][]byte, error)
	// SnapshotVersions accepts an optional augmenter function to apply
	// server-side filters. Only the remote backend uses this; local and S3
	// ignore it.
	SnapshotVersions(augmenter ...func(context.Context, *cli.Command, *api.SnapshotVersionListOptions) error) ([]*api.SnapshotVersion, error)
	String() string
	Type() (string, error)
}

// SelfDiffer is implemented by backends that can diff snapshots without an
// external differ.
type SelfDiffer interface {
	DiffSnapshots(ctx context.Context, cmd *cli.Command) ([][]byte, error)
}

// NewBackend returns the appropriate Backend implementation for the source
// spec resolved into the command metadata.
func NewBackend(ctx context.Context, cmd cli.Command) (Backend, error) {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("NewBackend: meta: %v", meta)

	source := meta.SourceSpec.Source
	store := meta.SourceSpec.Store

	switch {
	case source == "":
		// No source at all. The pure API query commands land here and just
		// need a naked remote built from flags, env, and config.
		return remote.NewBackendRemote(ctx, &cmd,
			remote.BuckNaked(),
			remote.WithStoreOverride(store),
		)

	case strings.HasPrefix(source, "s3://"):
		return s3.NewBackendS3(ctx, &cmd,
			s3.FromSource(source),
			s3.WithStoreOverride(store),
			s3.WithSvOverride(),
		)

	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return remote.NewBackendRemote(ctx, &cmd,
			remote.FromSource(source),
			remote.WithStoreOverride(store),
		)

	default:
		return local.NewBackendLocal(ctx, &cmd,
			local.FromSourceDir(source),
			local.WithStoreOverride(store),
		)
	}
}
