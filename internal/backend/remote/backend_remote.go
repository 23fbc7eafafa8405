// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/api"
	"github.com/fmctl/fmctl/internal/differ"
	"github.com/fmctl/fmctl/internal/svutil"
)

// BackendRemote reads order snapshots from the FreshMart API.
type BackendRemote struct {
	Ctx           context.Context
	Cmd           *cli.Command
	Endpoint      string
	Token         string
	StoreOverride string

	client *api.Client
}

// Client returns (building if needed) the API client for this backend.
func (be *BackendRemote) Client() (*api.Client, error) {
	if be.client != nil {
		return be.client, nil
	}
	if be.Endpoint == "" {
		return nil, fmt.Errorf("no API endpoint configured: pass an https:// source, set FMCTL_ENDPOINT, or set api.endpoint in the config file")
	}
	be.client = api.NewClient(strings.TrimSuffix(be.Endpoint, "/"), be.Token)
	return be.client, nil
}

// orderID returns the order this backend is scoped to, from the --order flag.
func (be *BackendRemote) orderID() (string, error) {
	id := be.Cmd.String("order")
	if id == "" {
		return "", fmt.Errorf("an order is required for snapshot operations against the API: pass --order")
	}
	return id, nil
}

func (be *BackendRemote) DiffSnapshots(ctx context.Context, cmd *cli.Command) ([][]byte, error) {
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

func (be *BackendRemote) Snapshot() ([]byte, error) {
	sv := be.Cmd.String("sv")
	snapshots, err := be.Snapshots(sv)
	if err != nil {
		return nil, err
	}
	return snapshots[0], nil
}

// SnapshotBody fetches one archived snapshot body by version id, consulting
// the on-disk cache first.
func (be *BackendRemote) SnapshotBody(svID string) ([]byte, error) {
	if err := PurgeCache(); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	orderID, err := be.orderID()
	if err != nil {
		return nil, err
	}

	if entry, ok := CacheReader(be, orderID+"/"+svID); ok {
		return entry.Data, nil
	}

	client, err := be.Client()
	if err != nil {
		return nil, err
	}

	body, err := client.Orders.SnapshotAt(be.Ctx, orderID, svID)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	if err := CacheWriter(be, orderID+"/"+svID, body); err != nil {
		log.WithError(err).Warn("failed to write snapshot to cache")
	}

	return body, nil
}

// SnapshotVersions implements backend.Backend. It pages through the order's
// archived snapshot versions, most recent first. The optional augmenter can
// mutate the list options before each page fetch.
func (be *BackendRemote) SnapshotVersions(augmenter ...func(context.Context, *cli.Command, *api.SnapshotVersionListOptions) error) ([]*api.SnapshotVersion, error) {
	client, err := be.Client()
	if err != nil {
		return nil, err
	}

	orderID, err := be.orderID()
	if err != nil {
		return nil, err
	}

	options := &api.SnapshotVersionListOptions{
		ListOptions: api.ListOptions{PageNumber: 1, PageSize: 100},
	}

	var versions []*api.SnapshotVersion
	for {
		for _, aug := range augmenter {
			if err := aug(be.Ctx, be.Cmd, options); err != nil {
				return nil, err
			}
		}

		page, pagination, err := client.Orders.SnapshotVersions(be.Ctx, orderID, options)
		if err != nil {
			return nil, err
		}
		versions = append(versions, page...)

		if pagination.NextPage == 0 {
			break
		}
		options.PageNumber = pagination.NextPage
	}

	limit := int(be.Cmd.Int("limit"))
	if limit > 0 && len(versions) > limit {
		versions = versions[:limit]
	}

	return versions, nil
}

func (be *BackendRemote) Snapshots(specs ...string) ([][]byte, error) {
	var results [][]byte

	candidates, _ := be.SnapshotVersions()
	versions, err := svutil.Resolve(candidates, specs...)
	if err != nil {
		return nil, err
	}
	log.Debugf("versions: %v", versions)

	// Now pound through the found versions and return each of their bodies.
	for _, v := range versions {
		var body []byte
		if v.Location != "" && v.Location == v.ID {
			// Spec resolved to a local snapshot file rather than an
			// archived version.
			body, err = os.ReadFile(v.Location)
		} else {
			body, err = be.SnapshotBody(v.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get snapshot: %w", err)
		}
		results = append(results, body)
	}

	return results, nil
}

func (be *BackendRemote) String() string {
	return be.Endpoint
}

func (be *BackendRemote) Type() (string, error) {
	return "remote", nil
}
