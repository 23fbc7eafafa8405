// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/api"
	awsx "github.com/fmctl/fmctl/internal/aws"
	"github.com/fmctl/fmctl/internal/differ"
	"github.com/fmctl/fmctl/internal/svutil"
)

// BackendS3 reads order snapshots from a versioned S3 object, as written by
// the dashboard's export job. Each archived snapshot is an object version of
// the same key, so S3's version history doubles as our snapshot history.
type BackendS3 struct {
	Ctx           context.Context
	Cmd           *cli.Command
	StoreOverride string
	SvOverride    string
	Backend       struct {
		Type   string
		Config struct {
			Bucket  string
			Key     string
			Region  string
			Profile string
		}
	}
}

func (be *BackendS3) DiffSnapshots(ctx context.Context, cmd *cli.Command) ([][]byte, error) {
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

func (be *BackendS3) Snapshot() ([]byte, error) {
	sv := be.Cmd.String("sv")
	snapshots, err := be.Snapshots(sv)
	if err != nil {
		return nil, err
	}
	return snapshots[0], nil
}

// objectKey returns the full object key, accounting for a store-partitioned
// export layout.
func (be *BackendS3) objectKey() string {
	if be.StoreOverride != "" {
		return path.Join("stores", be.StoreOverride, be.Backend.Config.Key)
	}
	return be.Backend.Config.Key
}

func (be *BackendS3) client() (*s3v2.Client, error) {
	var cfgOpts []awsx.Option
	if be.Backend.Config.Region != "" {
		cfgOpts = append(cfgOpts, awsx.WithRegion(be.Backend.Config.Region))
	}
	if be.Backend.Config.Profile != "" {
		cfgOpts = append(cfgOpts, awsx.WithProfile(be.Backend.Config.Profile))
	}
	cfg, err := awsx.LoadAWSConfig(be.Ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsx.NewS3(cfg), nil
}

// SnapshotBody fetches one archived snapshot body by S3 object version id,
// consulting the on-disk cache first.
func (be *BackendS3) SnapshotBody(svID string) ([]byte, error) {
	if err := PurgeCache(); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	if entry, ok := CacheReader(be, svID); ok {
		return entry.Data, nil
	}

	svc, err := be.client()
	if err != nil {
		return nil, err
	}

	result, err := svc.GetObject(be.Ctx, &s3v2.GetObjectInput{
		Bucket:    awsv2.String(be.Backend.Config.Bucket),
		Key:       awsv2.String(be.objectKey()),
		VersionId: awsv2.String(svID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if err := CacheWriter(be, svID, data); err != nil {
		log.WithError(err).Warn("failed to write snapshot to cache")
	}

	return data, nil
}

// SnapshotVersions implements backend.Backend. It lists the object versions
// of the export key, most recent first, and builds an api.SnapshotVersion for
// each with ID as the S3 version id and Serial pulled from the document.
func (be *BackendS3) SnapshotVersions(augmenter ...func(context.Context, *cli.Command, *api.SnapshotVersionListOptions) error) ([]*api.SnapshotVersion, error) {
	key := be.objectKey()

	svc, err := be.client()
	if err != nil {
		return nil, err
	}

	paginator := s3v2.NewListObjectVersionsPaginator(svc, &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(be.Backend.Config.Bucket),
		Prefix: awsv2.String(key),
	})

	var allDeleteMarkers []types.DeleteMarkerEntry
	var allVersions []types.ObjectVersion
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(be.Ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list object versions: %w", err)
		}
		allDeleteMarkers = append(allDeleteMarkers, page.DeleteMarkers...)
		allVersions = append(allVersions, page.Versions...)
	}

	var mostRecentDelete time.Time
	for _, d := range allDeleteMarkers {
		// The prefix is literally a prefix, so sidecar objects (export locks,
		// manifests) come back too. Only the export key itself counts.
		if d.Key == nil || *d.Key != key {
			if d.Key != nil {
				log.Debugf("Throwing away delete marker %s", *d.Key)
			}
			continue
		}
		if d.LastModified != nil && d.LastModified.After(mostRecentDelete) {
			mostRecentDelete = *d.LastModified
		}
	}

	combinedVersions := []*api.SnapshotVersion{}

	for _, v := range allVersions {
		if v.Key == nil || *v.Key != key {
			if v.Key != nil {
				log.Debugf("Throwing away %s", *v.Key)
			}
			continue
		}

		if v.LastModified != nil && v.LastModified.Before(mostRecentDelete) {
			continue
		}

		if v.VersionId == nil || v.LastModified == nil {
			continue
		}

		var body []byte
		entry, ok := CacheReader(be, *v.VersionId)
		if !ok {
			obj, err := svc.GetObject(be.Ctx, &s3v2.GetObjectInput{
				Bucket:    awsv2.String(be.Backend.Config.Bucket),
				Key:       awsv2.String(key),
				VersionId: v.VersionId,
			})
			if err != nil {
				log.WithError(err).Error("s3 get object failed")
				continue
			}

			body, err = io.ReadAll(obj.Body)
			obj.Body.Close()
			if err != nil {
				continue
			}

			if err := CacheWriter(be, *v.VersionId, body); err != nil {
				log.WithError(err).Error("error writing to cache")
			}
		} else {
			body = entry.Data
		}

		var doc struct {
			Serial int64 `json:"serial"`
		}
		_ = json.Unmarshal(body, &doc)

		combinedVersions = append(combinedVersions, &api.SnapshotVersion{
			ID:        *v.VersionId,
			CreatedAt: *v.LastModified,
			Serial:    doc.Serial,
		})
	}

	sort.Slice(combinedVersions, func(i, j int) bool {
		return combinedVersions[i].CreatedAt.After(combinedVersions[j].CreatedAt)
	})

	limit := int(be.Cmd.Int("limit"))
	if limit > 0 && len(combinedVersions) > limit {
		combinedVersions = combinedVersions[:limit]
	}

	return combinedVersions, nil
}

func (be *BackendS3) Snapshots(specs ...string) ([][]byte, error) {
	var results [][]byte

	candidates, _ := be.SnapshotVersions()
	versions, err := svutil.Resolve(candidates, specs...)
	if err != nil {
		return nil, err
	}
	log.Debugf("versions: %v", versions)

	// Now pound through the found versions and return each of their bodies.
	for _, v := range versions {
		body, err := be.SnapshotBody(v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get snapshot: %w", err)
		}
		results = append(results, body)
	}

	return results, nil
}

func (be *BackendS3) String() string {
	return "s3://" + path.Join(be.Backend.Config.Bucket, be.objectKey())
}

func (be *BackendS3) Type() (string, error) {
	return be.Backend.Type, nil
}
