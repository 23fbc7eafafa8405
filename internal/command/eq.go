// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/api"
	"github.com/fmctl/fmctl/internal/config"
	"github.com/fmctl/fmctl/internal/filters"
	"github.com/fmctl/fmctl/internal/meta"
)

// eqDefaultAttrs specifies the default attributes displayed for catalog
// entity triples in the "eq" command output.
var eqDefaultAttrs = []string{".subject", "predicate", "object"}

// eqCommandAction is the action handler for the "eq" subcommand. It lists
// catalog entity triples (subject/predicate/object facts about products,
// stores, and suppliers), supports --tldr/--schema shortcuts, and emits
// results per common flags.
func eqCommandAction(ctx context.Context, cmd *cli.Command) error {
	_, client, err := InitRemoteQuery(ctx, cmd)
	if err != nil {
		return err
	}

	config.Config.Namespace = "eq"

	// Create a fetcher that captures the client in a closure
	fetcher := func(
		ctx context.Context,
		opts *api.TripleListOptions,
	) ([]*api.Triple, *api.Pagination, error) {
		return client.Triples.List(ctx, opts)
	}

	// Use RemoteQueryFetcherFactory to handle pagination and augmentation
	fn := RemoteQueryFetcherFactory(
		fetcher,
		eqServerSideFilterAugmenter,
		"list entity triples",
	)

	return NewQueryActionRunner(
		"eq",
		reflect.TypeOf((*api.Triple)(nil)).Elem(),
		eqDefaultAttrs,
		fn,
	).Run(ctx, cmd)
}

// eqServerSideFilterAugmenter augments the triple list options with
// server-side filters before each API call.
func eqServerSideFilterAugmenter(
	_ context.Context,
	cmd *cli.Command,
	opts *api.TripleListOptions,
) error {
	spec := cmd.String("filter")
	filterList := filters.BuildFilters(spec)

	for _, f := range filterList {
		// We only care about server-side filters.
		if !f.ServerSide {
			continue
		}
		switch f.Key {
		case "subject":
			opts.Subject = f.Value
		case "predicate":
			opts.Predicate = f.Value
		}
	}

	log.Debugf("opts after augmentation: %+v", opts)

	return nil
}

// eqCommandBuilder constructs the cli.Command for "eq", wiring metadata,
// flags, and action handlers.
func eqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "eq",
		Usage:     "entity triple query",
		UsageText: "fmctl eq [Source] [options]",
		Flags: []cli.Flag{
			NewEndpointFlag("eq", meta.Config.Source),
			NewTokenFlag("eq", meta.Config.Source),
		},
		Action: eqCommandAction,
		Meta:   meta,
	}).Build()
}
