// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/backend"
	"github.com/fmctl/fmctl/internal/config"
	"github.com/fmctl/fmctl/internal/highlight"
	"github.com/fmctl/fmctl/internal/meta"
	"github.com/fmctl/fmctl/internal/snapshot"
)

// watchCommandAction is the action handler for the "watch" subcommand. It
// polls the backend for order snapshots on an interval and renders the
// snapshot tree, pulsing paths that changed within the highlight window.
func watchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "watch") {
		return nil
	}

	config.Config.Namespace = "watch"

	be, err := backend.NewBackend(ctx, *cmd)
	if err != nil {
		return err
	}
	log.Debugf("typBe: %v", be)

	interval := time.Duration(cmd.Int("interval")) * time.Second
	if interval <= 0 {
		interval = 2 * time.Second
	}

	duration := highlight.DefaultDuration
	if ms := cmd.Int("pulse"); ms > 0 {
		duration = time.Duration(ms) * time.Millisecond
	}

	model := watchModel{
		ctx:         ctx,
		cmd:         cmd,
		be:          be,
		highlighter: highlight.New(highlight.WithDuration(duration)),
		interval:    interval,
	}

	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}

// pollMsg carries a fetched snapshot (or the fetch error) into the model.
type pollMsg struct {
	data map[string]interface{}
	err  error
}

// renderMsg drives redraws between polls so expired highlights fade out.
type renderMsg time.Time

type watchModel struct {
	ctx         context.Context
	cmd         *cli.Command
	be          backend.Backend
	highlighter *highlight.Highlighter
	interval    time.Duration

	data    map[string]interface{}
	fetched bool
	err     error
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.poll(), m.renderTick())
}

// poll fetches the next snapshot from the backend after the poll interval.
// The first fetch fires immediately.
func (m watchModel) poll() tea.Cmd {
	delay := m.interval
	if !m.fetched {
		delay = 0
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		doc, err := m.be.Snapshot()
		if err != nil {
			return pollMsg{err: err}
		}

		doc, err = snapshot.MaybeDecrypt(m.cmd, doc)
		if err != nil {
			return pollMsg{err: err}
		}

		var data map[string]interface{}
		if err := json.Unmarshal(doc, &data); err != nil {
			return pollMsg{err: fmt.Errorf("failed to parse snapshot JSON: %w", err)}
		}
		return pollMsg{data: data}
	})
}

// renderTick redraws at a fraction of the highlight window so pulses expire
// smoothly.
func (m watchModel) renderTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return renderMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, m.poll()
		}
		m.err = nil
		m.data = msg.data
		m.fetched = true
		m.highlighter.Update(msg.data, trackingKey(msg.data))
		return m, m.poll()

	case renderMsg:
		return m, m.renderTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			// Force a reset and rebaseline on the next poll.
			m.highlighter.Reset("")
		}
	}

	return m, nil
}

func (m watchModel) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00B140"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#D0021B"))
	pulseStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F6BE00"))

	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("watching %s", m.be.String())))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	if !m.fetched {
		b.WriteString("waiting for first snapshot...\n")
		return b.String()
	}

	now := time.Now()
	renderNode(&b, m.data, "", 0, m.highlighter, now, pulseStyle)

	b.WriteString("\nq quit · r rebaseline\n")
	return b.String()
}

// trackingKey extracts the order ID used to key the highlighter. An absent
// ID returns "" so a later keyed snapshot forces a rebaseline.
func trackingKey(data map[string]interface{}) string {
	if order, ok := data["order"].(map[string]interface{}); ok {
		if id, ok := order["id"].(string); ok {
			return id
		}
	}
	return ""
}

// renderNode walks the snapshot tree in key order, writing one line per leaf
// and styling the line when its path is inside the highlight window. Paths
// are built the same way the highlighter builds them, so lookups line up.
func renderNode(
	b *strings.Builder,
	node any,
	path string,
	depth int,
	h *highlight.Highlighter,
	now time.Time,
	pulse lipgloss.Style,
) {
	indent := strings.Repeat("  ", depth)

	switch v := node.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			childPath := k
			if path != "" {
				childPath = path + "." + k
			}
			if isLeaf(v[k]) {
				writeLeaf(b, indent, k, v[k], h.IsHighlighted(childPath, now), pulse)
			} else {
				fmt.Fprintf(b, "%s%s:\n", indent, k)
				renderNode(b, v[k], childPath, depth+1, h, now, pulse)
			}
		}
	case []interface{}:
		for i, item := range v {
			idx := strconv.Itoa(i)
			childPath := idx
			if path != "" {
				childPath = path + "." + idx
			}
			if isLeaf(item) {
				writeLeaf(b, indent, "["+idx+"]", item, h.IsHighlighted(childPath, now), pulse)
			} else {
				fmt.Fprintf(b, "%s[%s]:\n", indent, idx)
				renderNode(b, item, childPath, depth+1, h, now, pulse)
			}
		}
	default:
		writeLeaf(b, indent, "", v, h.IsHighlighted(path, now), pulse)
	}
}

func writeLeaf(
	b *strings.Builder,
	indent string,
	label string,
	value any,
	highlighted bool,
	pulse lipgloss.Style,
) {
	line := fmt.Sprintf("%s%s: %v", indent, label, leafString(value))
	if label == "" {
		line = fmt.Sprintf("%s%v", indent, leafString(value))
	}
	if highlighted {
		line = pulse.Render(line)
	}
	b.WriteString(line)
	b.WriteString("\n")
}

func leafString(value any) string {
	if value == nil {
		return "null"
	}
	return fmt.Sprintf("%v", value)
}

func isLeaf(v any) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return false
	}
	return true
}

// watchCommandBuilder constructs the cli.Command for "watch", wiring
// metadata, flags, and action/validator handlers.
func watchCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "live order watch",
		UsageText: "fmctl watch [Source] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "poll interval in seconds",
				Value:   2,
			},
			&cli.IntFlag{
				Name:  "pulse",
				Usage: "highlight window in milliseconds",
				Value: 0,
			},
			&cli.StringFlag{
				Name:  "passphrase",
				Usage: "encrypted export passphrase",
			},
			&cli.StringFlag{
				Name:        "sv",
				Usage:       "snapshot version to query",
				Value:       "0",
				HideDefault: true,
			},
			NewEndpointFlag("watch"),
			NewTokenFlag("watch"),
			NewStoreFlag("watch"),
			tldrFlag,
			orderFlag,
		}, NewGlobalFlags("watch")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: watchCommandAction,
	}
}
