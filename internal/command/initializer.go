// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/api"
	"github.com/fmctl/fmctl/internal/backend"
	"github.com/fmctl/fmctl/internal/backend/remote"
)

// RemoteListFetcher[T, O] is the signature for a function that performs
// the actual API list call for a resource type. It takes the context and
// options (mutable), and returns items, pagination, or error.
// T is the result type (e.g., *api.Order), O is the options type
// (e.g., api.OrderListOptions).
type RemoteListFetcher[T, O any] func(
	context.Context,
	*O,
) ([]T, *api.Pagination, error)

// InitBackendQuery initializes a backend connection for queries that operate
// on snapshot sources (local exports, s3 objects, or the remote API). It
// returns the backend or an error if initialization fails.
func InitBackendQuery(ctx context.Context, cmd *cli.Command) (
	backend.Backend,
	error,
) {
	be, err := backend.NewBackend(ctx, *cmd)
	if err != nil {
		return nil, err
	}
	log.Debugf("be: %v", be)
	return be, nil
}

// InitRemoteQuery initializes a remote backend connection for queries that
// operate exclusively against the FreshMart API. It returns the backend and
// API client, or an error if initialization fails.
func InitRemoteQuery(
	ctx context.Context,
	cmd *cli.Command,
) (*remote.BackendRemote, *api.Client, error) {
	be, err := remote.NewBackendRemote(ctx, cmd, remote.BuckNaked())
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("be: %v", be)

	client, err := be.Client()
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("client: %v", client.BaseURL())

	return be, client, nil
}
