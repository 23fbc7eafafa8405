// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Augmenter[T] is a callback that customizes list options before each API
// call. Query commands use it to push `_key=value` filter specs (order
// status, store, product category) to the server instead of filtering the
// full result set locally. Return an error to abort pagination.
type Augmenter[T any] func(
	context.Context,
	*cli.Command,
	*T,
) error
