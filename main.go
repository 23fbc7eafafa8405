// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fmctl/fmctl/internal/cacheutil"
	"github.com/fmctl/fmctl/internal/command"
	"github.com/fmctl/fmctl/internal/config"
	"github.com/fmctl/fmctl/internal/log"
	"github.com/fmctl/fmctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		// Expand @set first, then collapse any duplicate flags the
		// expansion may have introduced. Explicit flags win because the
		// set is injected ahead of them.
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = deduplicateFlags(args)
		log.Debugf("args after dedup: args=%v", args)

		return args
	}
}

// deduplicateFlags removes repeated flags, keeping the last occurrence. Flags
// are matched by name regardless of --flag value vs --flag=value syntax.
// Positional arguments are preserved in place.
func deduplicateFlags(args []string) []string {
	result := make([]string, 0, len(args))
	if len(args) <= 2 {
		return append(result, args...)
	}
	result = append(result, args[:2]...)

	// Group the remaining args into flag (with optional value) and
	// positional chunks.
	type chunk struct {
		text []string
		key  string // flag name, "" for positionals
	}
	var chunks []chunk

	i := 2
	for i < len(args) {
		a := args[i]
		if strings.HasPrefix(a, "-") {
			name := strings.TrimLeft(a, "-")
			if eq := strings.Index(name, "="); eq != -1 {
				chunks = append(chunks, chunk{text: []string{a}, key: name[:eq]})
				i++
				continue
			}
			// A following non-flag token is this flag's value.
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				chunks = append(chunks, chunk{text: []string{a, args[i+1]}, key: name})
				i += 2
				continue
			}
			chunks = append(chunks, chunk{text: []string{a}, key: name})
			i++
			continue
		}
		chunks = append(chunks, chunk{text: []string{a}})
		i++
	}

	// Last occurrence of each flag wins.
	last := make(map[string]int)
	for idx, c := range chunks {
		if c.key != "" {
			last[c.key] = idx
		}
	}

	for idx, c := range chunks {
		if c.key != "" && last[c.key] != idx {
			continue
		}
		result = append(result, c.text...)
	}

	return result
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set arguments at the @set position.
func processSetOnly(args []string) []string {
	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx != -1 {
		// Remove the @set argument.
		args = append(args[:removeIdx], args[removeIdx+1:]...)
		// Expand the set arguments at the removeIdx position.
		setArgs, _ := config.GetStringSlice(args[1] + "." + set)
		for _, arg := range setArgs {
			parts := strings.Fields(arg)
			args = append(args[:removeIdx], append(parts, args[removeIdx:]...)...)
			removeIdx += len(parts)
		}
	}
	return args
}
