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

var pqDefaultAttrs = []string{".sku", "name", "category", "price"}

// pqCommandAction is the action handler for the "pq" subcommand. It lists
// products from the catalog, supports --tldr/--schema short-circuit behavior,
// and emits output per common flags. Client-side filtering understands the
// special "redundant" key, which keeps or drops products whose name restates
// their category.
func pqCommandAction(ctx context.Context, cmd *cli.Command) error {
	_, client, err := InitRemoteQuery(ctx, cmd)
	if err != nil {
		return err
	}

	config.Config.Namespace = "pq"

	// Create a fetcher that captures the client in a closure
	fetcher := func(
		ctx context.Context,
		opts *api.ProductListOptions,
	) ([]*api.Product, *api.Pagination, error) {
		return client.Products.List(ctx, opts)
	}

	// Use RemoteQueryFetcherFactory to handle pagination and augmentation
	fn := RemoteQueryFetcherFactory(
		fetcher,
		pqServerSideFilterAugmenter,
		"list products",
	)

	return NewQueryActionRunner(
		"pq",
		reflect.TypeOf((*api.Product)(nil)).Elem(),
		pqDefaultAttrs,
		fn,
	).Run(ctx, cmd)
}

// pqServerSideFilterAugmenter augments the ProductListOptions with
// server-side filters extracted from the --filter flag.
func pqServerSideFilterAugmenter(
	_ context.Context,
	cmd *cli.Command,
	opts *api.ProductListOptions,
) error {
	spec := cmd.String("filter")
	filterList := filters.BuildFilters(spec)

	for _, f := range filterList {
		// We only care about server-side filters.
		if !f.ServerSide {
			continue
		}
		switch f.Key {
		case "category":
			opts.Category = f.Value
		case "query":
			opts.Query = f.Value
		}
	}

	log.Debugf("opts after augmentation: %+v", opts)
	return nil
}

// pqCommandBuilder constructs the cli.Command for "pq", wiring metadata,
// flags, and action/validator handlers.
func pqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:  "pq",
		Usage: "product query",
		Flags: []cli.Flag{
			NewEndpointFlag("pq", meta.Config.Source),
			NewTokenFlag("pq", meta.Config.Source),
		},
		Action: pqCommandAction,
		Meta:   meta,
	}).Build()
}
