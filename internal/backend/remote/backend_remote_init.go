// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/config"
)

type BackendRemoteOption = func(ctx context.Context, cmd *cli.Command, be *BackendRemote) error

// NewBackendRemote returns a BackendRemote object that implements the
// Backend interface.
func NewBackendRemote(ctx context.Context, cmd *cli.Command, options ...BackendRemoteOption) (*BackendRemote, error) {
	options = append([]BackendRemoteOption{WithDefaults()}, options...)

	be := &BackendRemote{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

// WithDefaults resolves the endpoint and token from flag, environment and
// config file, in that order of precedence.
func WithDefaults() BackendRemoteOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendRemote) error {
		endpoint := cmd.String("endpoint")
		if endpoint == "" {
			endpoint = os.Getenv("FMCTL_ENDPOINT")
		}
		if endpoint == "" {
			endpoint, _ = config.GetString("api.endpoint", "")
		}
		be.Endpoint = endpoint

		token := cmd.String("token")
		if token == "" {
			token = os.Getenv("FMCTL_TOKEN")
		}
		if token == "" {
			token, _ = config.GetString("api.token", "")
		}
		be.Token = token

		return nil
	}
}

// FromSource points the backend at an explicit http(s):// endpoint from the
// source spec, overriding whatever WithDefaults resolved.
func FromSource(source string) BackendRemoteOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendRemote) error {
		if source != "" {
			be.Endpoint = strings.TrimSuffix(source, "/")
		}
		return nil
	}
}

// WithStoreOverride scopes queries to one store.
func WithStoreOverride(store string) BackendRemoteOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendRemote) error {
		if store != "" {
			be.StoreOverride = store
		}
		return nil
	}
}

// BuckNaked builds a backend with no source spec at all: endpoint and token
// come solely from flags, environment, or the config file. Used by the pure
// API query commands that have no snapshot source.
func BuckNaked() BackendRemoteOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendRemote) error {
		return nil
	}
}
