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

var oqDefaultAttrs = []string{".id", "status", "store", "placed-at"}

// oqCommandAction is the action handler for the "oq" subcommand. It lists
// orders from the configured endpoint, supports --tldr/--schema
// short-circuit behavior, and emits output per common flags.
func oqCommandAction(ctx context.Context, cmd *cli.Command) error {

	config.Config.Namespace = "oq"

	_, client, err := InitRemoteQuery(ctx, cmd)
	if err != nil {
		return err
	}

	fn := func(ctx context.Context, cmd *cli.Command) ([]*api.Order, error) {
		options := api.OrderListOptions{
			ListOptions: DefaultListOptions,
		}
		return PaginateWithOptions(
			ctx,
			cmd,
			&options,
			func(ctx context.Context, opts *api.OrderListOptions) (
				[]*api.Order,
				*api.Pagination,
				error,
			) {
				return client.Orders.List(ctx, opts)
			},
			oqServerSideFilterAugmenter,
		)
	}

	return NewQueryActionRunner(
		"oq",
		reflect.TypeOf((*api.Order)(nil)).Elem(),
		oqDefaultAttrs,
		fn,
	).Run(ctx, cmd)
}

// oqServerSideFilterAugmenter augments the OrderListOptions with
// server-side filters extracted from the --filter flag.
func oqServerSideFilterAugmenter(
	_ context.Context,
	cmd *cli.Command,
	opts *api.OrderListOptions,
) error {
	if store := cmd.String("store"); store != "" {
		opts.Store = store
	}

	spec := cmd.String("filter")
	filterList := filters.BuildFilters(spec)

	for _, f := range filterList {
		// We only care about server-side filters.
		if !f.ServerSide {
			continue
		}
		switch f.Key {
		case "status":
			opts.Status = f.Value
		case "store":
			opts.Store = f.Value
		case "query":
			opts.Query = f.Value
		}
	}

	log.Debugf("opts after augmentation: %+v", opts)
	return nil
}

// oqCommandBuilder constructs the cli.Command for "oq", configuring metadata,
// flags, and the associated action/validator.
func oqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "oq",
		Usage:     "order query",
		UsageText: "fmctl oq [Source] [options]",
		Flags: []cli.Flag{
			NewEndpointFlag("oq", meta.Config.Source),
			NewTokenFlag("oq", meta.Config.Source),
			NewStoreFlag("oq", meta.Config.Source),
		},
		Action: oqCommandAction,
		Meta:   meta,
	}).Build()
}
