// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/api"
	"github.com/fmctl/fmctl/internal/meta"
)

// vqDefaultAttrs specifies the default attributes displayed for snapshot
// versions in the "vq" command output.
var vqDefaultAttrs = []string{".id", "serial", "created-at"}

// vqCommandAction is the action handler for the "vq" subcommand. It lists
// snapshot versions via the active backend, supports --tldr/--schema
// shortcuts, and emits results per common flags.
func vqCommandAction(ctx context.Context, cmd *cli.Command) error {
	be, err := InitBackendQuery(ctx, cmd)
	if err != nil {
		return err
	}

	fn := func(ctx context.Context, cmd *cli.Command) ([]*api.SnapshotVersion, error) {
		return be.SnapshotVersions(VqServerSideFilterAugmenter)
	}

	return NewQueryActionRunner(
		"vq",
		reflect.TypeOf((*api.SnapshotVersion)(nil)).Elem(),
		vqDefaultAttrs,
		fn,
	).Run(ctx, cmd)
}

// VqServerSideFilterAugmenter augments the SnapshotVersionListOptions with
// server-side filters extracted from the --filter flag.
// NOTE The signature departure from the typical factory pattern used by other
// commands - this func is public.
// NOTE Unimplemented for now as SnapshotVersionListOptions has no server-side
// filter fields.
func VqServerSideFilterAugmenter(
	_ context.Context,
	cmd *cli.Command,
	opts *api.SnapshotVersionListOptions,
) error {
	log.Debugf("opts after augmentation: %+v", opts)
	return nil
}

// vqCommandBuilder constructs the cli.Command for "vq", wiring metadata,
// flags, and action handlers.
func vqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "vq",
		Usage:     "snapshot version query",
		UsageText: "fmctl vq [Source] [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"L"},
				Usage:   "limit snapshot versions returned",
				Value:   99999,
			},
			NewEndpointFlag("vq"),
			NewTokenFlag("vq"),
			NewStoreFlag("vq"),
			orderFlag,
		},
		Action: vqCommandAction,
		Meta:   meta,
	}).Build()
}
