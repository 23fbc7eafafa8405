// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/api"
	"github.com/fmctl/fmctl/internal/differ"
	"github.com/fmctl/fmctl/internal/svutil"
)

// BackendLocal reads order snapshots from an export directory on the local
// filesystem, as written by the dashboard's export job.
type BackendLocal struct {
	Ctx             context.Context
	Cmd             *cli.Command
	RootDir         string `json:"-" validate:"dir"`
	StoreOverride   string
	Version         int    `json:"version" validate:"gte=1"`
	ExporterVersion string `json:"exporter_version"`
	Backend         struct {
		Type   string `json:"type" validate:"eq=local"`
		Config struct {
			Path     string `json:"path"`
			StoreDir string `json:"store_dir"`
		} `json:"config"`
	} `json:"backend"`
}

func (be *BackendLocal) DiffSnapshots(ctx context.Context, cmd *cli.Command) ([][]byte, error) {
	// Fixup diffArgs
	svSpecs := []string{"CSV~1", "CSV~0"}

	diffArgs := differ.ParseDiffArgs(ctx, cmd)

	switch len(diffArgs) {
	case 0:
		// No args, so use the last two snapshots.
	case 1:
		if strings.HasPrefix(diffArgs[0], "+") {
			versionList, err := be.SnapshotVersions()
			if err != nil {
				return nil, fmt.Errorf("failed to get snapshot version list: %v", err)
			}

			selectedVersions := differ.SelectSnapshotVersions(versionList)

			log.Debugf("selectedVersions: %d", len(selectedVersions))

			if len(selectedVersions) == 0 {
				return nil, nil
			} else if len(selectedVersions) == 2 {
				svSpecs[0] = selectedVersions[1].ID
				svSpecs[1] = selectedVersions[0].ID
			}
		} else {
			svSpecs[0] = diffArgs[0]
		}
	case 2:
		svSpecs = diffArgs
	}

	snapshots, _ := be.Snapshots(svSpecs[0], svSpecs[1])

	return snapshots, nil
}

func (be *BackendLocal) Snapshot() ([]byte, error) {
	sv := be.Cmd.String("sv")
	snapshots, err := be.Snapshots(sv)
	if err != nil {
		return nil, err
	}
	return snapshots[0], nil
}

// SnapshotVersions implements backend.Backend. It scans be.RootDir for
// snapshot export files, parses them, and creates a minimal
// api.SnapshotVersion with ID as filename, CreatedAt from file timestamp, and
// Serial from the document. Other Backend types will cache these results for
// efficiencies sake. We're not doing that here, since local filesystem access
// should be lickity split.
func (be *BackendLocal) SnapshotVersions(augmenter ...func(context.Context, *cli.Command, *api.SnapshotVersionListOptions) error) ([]*api.SnapshotVersion, error) {
	var versions []*api.SnapshotVersion

	// If there's a .fmctl/store file, the export dir is partitioned by store
	// and that file names the active one.
	if be.StoreOverride == "" {
		storeFile := filepath.Join(be.RootDir, ".fmctl/store")
		if storeFileData, err := os.ReadFile(storeFile); err == nil {
			be.StoreOverride = string(bytes.TrimSpace(storeFileData))
		}
	}

	storePath := ""
	if be.StoreOverride != "" {
		storePath = filepath.Join("stores", be.StoreOverride)
	}

	files, err := filepath.Glob(filepath.Join(be.RootDir, storePath, "snapshot*.json"))
	if err != nil {
		return nil, err
	}
	type fileInfo struct {
		path string
		mod  int64
	}
	var infos []fileInfo
	for _, f := range files {
		stat, err := os.Stat(f)
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{f, stat.ModTime().UnixNano()})
	}
	// Sort by mod time, descending
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].mod > infos[j].mod
	})

	for _, info := range infos {
		f, err := os.Open(info.path)
		if err != nil {
			continue
		}

		// Get the timestamp.
		stat, err := f.Stat()
		if err != nil {
			f.Close()
			continue
		}

		// We care about just grabbing serial out of the doc.
		var doc struct {
			Serial int64 `json:"serial"`
		}
		dec := json.NewDecoder(f)
		if err := dec.Decode(&doc); err != nil {
			f.Close()
			continue
		}
		f.Close()

		versions = append(versions, &api.SnapshotVersion{
			ID:        filepath.Base(info.path),
			CreatedAt: stat.ModTime(),
			Serial:    doc.Serial,
			// We're stealing this attribute and using it as the full path to
			// the snapshot file.
			Location: info.path,
		})
	}

	return versions, nil
}

func (be *BackendLocal) Snapshots(specs ...string) ([][]byte, error) {
	var results [][]byte

	candidates, _ := be.SnapshotVersions()
	versions, err := svutil.Resolve(candidates, specs...)
	if err != nil {
		return nil, err
	}
	log.Debugf("versions: %v", versions)

	// Now pound through the found versions and return each of their bodies.
	for _, v := range versions {
		body, err := os.ReadFile(v.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot file: %w", err)
		}
		results = append(results, body)
	}

	return results, nil
}

func (be *BackendLocal) String() string {
	return be.RootDir
}

func (be *BackendLocal) Type() (string, error) {
	return "local", nil
}
