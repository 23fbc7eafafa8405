// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package svutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmctl/fmctl/internal/api"
)

// makeSnapshotVersions creates a test slice of SnapshotVersions, most recent
// first.
func makeSnapshotVersions() []*api.SnapshotVersion {
	return []*api.SnapshotVersion{
		{
			ID:       "snap-004",
			Serial:   104,
			Location: "https://api.freshmart.example/orders/o-1/snapshots/snap-004",
		},
		{
			ID:       "snap-003",
			Serial:   103,
			Location: "https://api.freshmart.example/orders/o-1/snapshots/snap-003",
		},
		{
			ID:       "snap-002",
			Serial:   102,
			Location: "https://api.freshmart.example/orders/o-1/snapshots/snap-002",
		},
		{
			ID:       "snap-alpha-001",
			Serial:   101,
			Location: "https://api.freshmart.example/orders/o-1/snapshots/snap-alpha-001",
		},
	}
}

func TestResolve(t *testing.T) {
	versions := makeSnapshotVersions()

	tests := []struct {
		name    string
		specs   []string
		wantIDs []string
		wantErr string
	}{
		{
			name:    "no specs defaults to CSV~0",
			specs:   nil,
			wantIDs: []string{"snap-004"},
		},
		{
			name:    "CSV~1 is the previous version",
			specs:   []string{"CSV~1"},
			wantIDs: []string{"snap-003"},
		},
		{
			name:    "two specs resolve in order",
			specs:   []string{"CSV~1", "CSV~0"},
			wantIDs: []string{"snap-003", "snap-004"},
		},
		{
			name:    "serial lookup",
			specs:   []string{"102"},
			wantIDs: []string{"snap-002"},
		},
		{
			name:    "relative numeric index",
			specs:   []string{"-2"},
			wantIDs: []string{"snap-002"},
		},
		{
			name:    "id prefix",
			specs:   []string{"snap-alpha"},
			wantIDs: []string{"snap-alpha-001"},
		},
		{
			name:    "CSV index out of range",
			specs:   []string{"CSV~9"},
			wantErr: "out of range",
		},
		{
			name:    "unknown serial",
			specs:   []string{"999"},
			wantErr: "failed to find snapshot version with serial",
		},
		{
			name:    "unknown id prefix",
			specs:   []string{"zzz"},
			wantErr: "failed to find snapshot version with ID prefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Resolve(versions, tt.specs...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]string, len(result))
			for i, v := range result {
				ids[i] = v.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestResolve_FileSpec(t *testing.T) {
	f := filepath.Join(t.TempDir(), "snapshot-1.json")
	require.NoError(t, os.WriteFile(f, []byte(`{"serial": 1}`), 0o644))

	result, err := Resolve(makeSnapshotVersions(), f)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, f, result[0].ID)
	assert.Equal(t, f, result[0].Location)
}
