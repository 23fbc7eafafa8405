// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/meta"
)

const bashCompletionScript = `# bash completion for fmctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_fmctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "cq eq iq oq pq sq vq watch completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"

    # Determine if an optional Source (first non-flag after subcommand) has
		# already been provided
    local have_source=0
    local idx=2
    while [[ $idx -lt ${#COMP_WORDS[@]} ]]; do
        local w=${COMP_WORDS[$idx]}
        if [[ $w != -* ]]; then
            have_source=1
            break
        fi
        ((idx++))
    done

    case "$cmd" in
    cq)
      local opts="$common --schema --endpoint -e --token --order -O"
            ;;
        eq)
      local opts="$common --schema --endpoint -e --token"
            ;;
        iq)
            local opts="$common --passphrase -p --sv --order -O"
            ;;
        oq)
      local opts="$common --schema --endpoint -e --token --store"
            ;;
        pq)
      local opts="$common --schema --endpoint -e --token"
            ;;
        sq)
      local opts="$common --chop --diff --diff_filter --endpoint -e --token --store --passphrase --short --sv --limit --order -O"
            ;;
        vq)
      local opts="$common --schema --endpoint -e --token --store --limit -L --order -O"
            ;;
        watch)
      local opts="$common --interval -i --pulse --endpoint -e --token --store --passphrase --sv --order -O"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  # If current token starts with '-', or we've already consumed Source, offer flags
  if [[ "$cur" == -* || $have_source -eq 1 ]]; then
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
  fi

  # Otherwise, we're on the (optional) Source positional - complete directories
  COMPREPLY=( $(compgen -o dirnames -- "$cur") )
  return 0
}

complete -F _fmctl fmctl
`

const zshCompletionScript = `#compdef fmctl

_fmctl() {
  local -a cmds
  cmds=(
    'cq:cart query'
    'eq:entity triple query'
    'iq:interactive snapshot console'
    'oq:order query'
    'pq:product query'
    'sq:snapshot query'
    'vq:snapshot version query'
    'watch:live order watch'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'fmctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    cq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-e --endpoint)'{-e,--endpoint}'[API endpoint]' \
        '--token[API token]' \
        '(-O --order)'{-O,--order}'[order]'
      ;;
    eq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-e --endpoint)'{-e,--endpoint}'[API endpoint]' \
        '--token[API token]' \
        '::Source:_directories'
      ;;
    iq)
      _arguments -C \
        '(-p --passphrase)'{-p,--passphrase}'[export passphrase]' \
        '--sv[snapshot version]' \
        '(-O --order)'{-O,--order}'[order]' \
        '::Source:_directories'
      ;;
    oq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-e --endpoint)'{-e,--endpoint}'[API endpoint]' \
        '--token[API token]' \
        '--store[store]' \
        '::Source:_directories'
      ;;
    pq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '(-e --endpoint)'{-e,--endpoint}'[API endpoint]' \
        '--token[API token]'
      ;;
    sq)
      _arguments -C \
        $common \
        '--chop[chop common item prefix from names]' \
        '--diff[find difference between snapshot versions]' \
        '--diff_filter[filter for diff results]' \
        '--endpoint[API endpoint to use for queries]' \
        '--limit[limit snapshot versions returned]' \
        '(-p --passphrase)'{-p,--passphrase}'[encrypted export passphrase]' \
        '--short[include full item name paths]' \
        '--store[store to scope queries to]' \
        '--sv[snapshot version to query]' \
        '(-O --order)'{-O,--order}'[order]' \
        '::Source:_directories'
      ;;
    vq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--limit[-L][limit results]':limit \
        '(-e --endpoint)'{-e,--endpoint}'[API endpoint]' \
        '--token[API token]' \
        '--store[store]' \
        '(-O --order)'{-O,--order}'[order]' \
        '::Source:_directories'
      ;;
    watch)
      _arguments -C \
        $common \
        '(-i --interval)'{-i,--interval}'[poll interval in seconds]' \
        '--pulse[highlight window in milliseconds]' \
        '--endpoint[API endpoint]' \
        '--token[API token]' \
        '--store[store]' \
        '--passphrase[export passphrase]' \
        '--sv[snapshot version]' \
        '(-O --order)'{-O,--order}'[order]' \
        '::Source:_directories'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:directory:_directories'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _fmctl fmctl fmctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: fmctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "fmctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
