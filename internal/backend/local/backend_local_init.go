// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

type BackendLocalOption = func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error

func FromSourceDir(sourceDir string) BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {

		// Is sourceDir a relative or absolute path?
		if filepath.IsAbs(sourceDir) {
			be.RootDir = sourceDir
		} else {
			cwd, _ := os.Getwd()
			be.RootDir = filepath.Join(cwd, sourceDir)
		}

		// Does the export manifest exist in RootDir and is it valid? An export
		// dir without a manifest is still usable, so load() tolerates absence.
		return be.load(ctx, cmd)
	}
}

// NewBackendLocal returns a BackendLocal object that implements the Backend
// interface. It is load()ed from the export manifest found in the sourceDir.
func NewBackendLocal(ctx context.Context, cmd *cli.Command, options ...BackendLocalOption) (*BackendLocal, error) {
	options = append([]BackendLocalOption{WithDefaults()}, options...)

	be := &BackendLocal{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

func WithDefaults() BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		cwd, _ := os.Getwd()
		be.RootDir = cwd

		be.Version = 1
		be.ExporterVersion = "0.0.0"
		be.Backend.Type = "local"

		return nil
	}
}

func WithStoreOverride(store string) BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		if store != "" {
			be.StoreOverride = store
		}
		return nil
	}
}

// load reads the export manifest and unmarshals it into the BackendLocal
// struct. It is simply a convenience method to make NewBackendLocal more
// readable.
func (be *BackendLocal) load(_ context.Context, _ *cli.Command) error {
	manifest := filepath.Join(be.RootDir, ".fmctl/export.json")
	data, err := os.ReadFile(manifest)
	if err != nil {
		// Deal with a bare directory of snapshot files. The export job only
		// writes a manifest on full exports, so a missing one is a valid
		// situation and we just scan the directory as-is.
		if os.IsNotExist(err) {
			log.Debugf("export manifest %s does not exist, scanning dir as-is", manifest)
			be.Backend.Type = "local"
			return nil
		} else {
			return fmt.Errorf("failed to read export manifest: %w", err)
		}
	}

	var temp BackendLocal
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("failed to unmarshal export manifest: %w", err)
	}

	if temp.Backend.Type != "local" {
		return fmt.Errorf("export manifest backend type is not local: %s", temp.Backend.Type)
	}

	be.Version = temp.Version
	be.ExporterVersion = temp.ExporterVersion
	be.Backend = temp.Backend

	return nil
}
