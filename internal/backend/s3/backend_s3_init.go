// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/config"
)

type BackendS3Option = func(ctx context.Context, cmd *cli.Command, be *BackendS3) error

// FromSource parses an s3://bucket/key source spec into the backend config.
func FromSource(source string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		u, err := url.Parse(source)
		if err != nil {
			return fmt.Errorf("failed to parse s3 source %s: %w", source, err)
		}
		if u.Scheme != "s3" || u.Host == "" {
			return fmt.Errorf("invalid s3 source: %s", source)
		}

		be.Backend.Config.Bucket = u.Host
		be.Backend.Config.Key = strings.TrimPrefix(u.Path, "/")
		if be.Backend.Config.Key == "" {
			return fmt.Errorf("s3 source %s has no object key", source)
		}

		return nil
	}
}

// NewBackendS3 returns a BackendS3 object that implements the Backend
// interface.
func NewBackendS3(ctx context.Context, cmd *cli.Command, options ...BackendS3Option) (*BackendS3, error) {
	options = append([]BackendS3Option{WithDefaults()}, options...)

	be := &BackendS3{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

func WithDefaults() BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.Backend.Type = "s3"

		region, _ := config.GetString("backend.s3.region", "")
		be.Backend.Config.Region = region

		profile, _ := config.GetString("backend.s3.profile", "")
		be.Backend.Config.Profile = profile

		return nil
	}
}

func WithStoreOverride(store string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if store != "" {
			be.StoreOverride = store
		}
		return nil
	}
}

func WithSvOverride() BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		sv := cmd.String("sv")
		if sv != "" {
			be.SvOverride = sv
		}
		return nil
	}
}
