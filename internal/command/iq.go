// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/command/iq"
	"github.com/fmctl/fmctl/internal/config"
	"github.com/fmctl/fmctl/internal/meta"
	"github.com/fmctl/fmctl/internal/snapshot"
)

func iqCommandAction(ctx context.Context, cmd *cli.Command) error {
	// iqCommandAction is the action handler for the "iq" subcommand. It
	// loads an order snapshot for the target source and launches an
	// interactive console to explore line items and order fields.
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "iq"

	// Use the same backend detection and snapshot loading as sq
	snapshotData, err := snapshot.LoadSnapshotData(ctx, cmd)
	if err != nil {
		return err
	}

	// Run interactive console
	return runIqInteractiveConsole(snapshotData)
}

// iqModel represents the Bubble Tea model for iq command
type iqModel struct {
	input          textinput.Model
	history        []string // Full history for navigation (includes file history)
	sessionHistory []string // Only commands from this session (matches with outputs)
	histIndex      int
	output         []string
	snapshotData   map[string]interface{}
}

func initialIqModel(snapshotData map[string]interface{}) iqModel {
	ti := textinput.New()
	ti.Placeholder = ""
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 999
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorBlink) // Set to blinking vertical line

	// Load history from file
	history := loadIqHistory(getIqHistoryFile())

	// Add initial welcome message
	var output []string
	if order, ok := snapshotData["order"].(map[string]interface{}); ok {
		if items, ok := order["items"].([]interface{}); ok {
			output = append(output, fmt.Sprintf("Interactive snapshot console loaded. %d line items found.", len(items)))
		}
	}
	output = append(output, "Type 'help' for syntax, 'exit' or Ctrl+C to quit.")

	return iqModel{
		input:          ti,
		history:        history,
		sessionHistory: []string{}, // Empty for new session
		histIndex:      -1,
		output:         output,
		snapshotData:   snapshotData,
	}
}

func (m iqModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m iqModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			entry := m.input.Value()
			if strings.TrimSpace(entry) != "" {
				// Handle special commands
				if entry == "exit" || entry == "quit" {
					return m, tea.Quit
				}
				if entry == "help" {
					m.history = append(m.history, entry)
					m.sessionHistory = append(m.sessionHistory, entry)
					m.histIndex = -1
					m.output = append(m.output, getIqHelp())
					saveIqHistory(getIqHistoryFile(), m.history)
					m.input.SetValue("")
					return m, nil
				}

				// Process query and get output
				result := processIqQuery(m.snapshotData, entry)

				m.history = append(m.history, entry)
				m.sessionHistory = append(m.sessionHistory, entry)
				m.histIndex = -1
				m.output = append(m.output, result)
				saveIqHistory(getIqHistoryFile(), m.history)
			}
			m.input.SetValue("")
			return m, nil

		case "up":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex == -1 {
				m.histIndex = len(m.history) - 1
			} else if m.histIndex > 0 {
				m.histIndex--
			}
			m.input.SetValue(m.history[m.histIndex])
			m.input.CursorEnd()
			return m, nil

		case "down":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex >= 0 && m.histIndex < len(m.history)-1 {
				m.histIndex++
				m.input.SetValue(m.history[m.histIndex])
				m.input.CursorEnd()
			} else {
				m.histIndex = -1
				m.input.SetValue("")
			}
			return m, nil

		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m iqModel) View() string {
	// FreshMart green style for the prompt
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00B140"))

	var lines []string

	// Add the initial welcome messages first
	if len(m.output) >= 2 {
		lines = append(lines, m.output[0])
		lines = append(lines, m.output[1])
	}

	// Add each command from THIS SESSION with its corresponding output
	for i := 0; i < len(m.sessionHistory); i++ {
		// Show the command that was entered in this session
		lines = append(lines, promptStyle.Render("> ")+m.sessionHistory[i])

		// Show the corresponding output (accounting for the 2 initial messages)
		if (i + 2) < len(m.output) {
			lines = append(lines, m.output[i+2])
		}
	}

	// Add current prompt and input
	lines = append(lines, promptStyle.Render("> ")+m.input.View())

	return strings.Join(lines, "\n")
}

// getIqHelp returns the help text as a string
func getIqHelp() string {
	return `Query syntax:
  Three query modes supported:

  1. JSON output (queries starting with '.')
     .dairy_milk                      - All picks in category dairy_milk
     .dairy_milk.SKU-1001             - All picks for one SKU as JSON
     .dairy_milk.SKU-1001[0]          - Specific slot
     .dairy_milk.SKU-1001["backup"]   - Named slot
     .sub.dairy_milk                  - Substituted picks only

  2. List output (queries not starting with '.')
     dairy_milk                       - List picks in category dairy_milk
     dairy_milk.SKU-1001              - List picks for one SKU
     dairy_milk.SKU-1001[0]           - List specific slot
     sub.bakery_bread                 - List substituted bakery picks

  3. Function evaluation (queries starting with '/')
     /coalesce(null, "default")       - Evaluate coalesce function
     /length("hello")                 - Get string length
     /upper("world")                  - Convert to uppercase
     /dairy_milk.SKU-1001[0].price * 2 - Arithmetic over item attributes

  Special queries:
     serial                           - Get snapshot serial
     version                          - Get snapshot document version
     order.status                     - Get order header field

  Navigation:
     ↑/↓ arrows                       - Navigate command history
     Ctrl+C                           - Exit

  Examples:
     .bakery_bread.SKU-2002[0]        - JSON for first bakery pick
     /coalesce(null, "fallback")      - Function evaluation`
}

// getIqHistoryFile returns the path to the iq history file
func getIqHistoryFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fmctl_iq_history"
	}
	return filepath.Join(homeDir, ".fmctl_iq_history")
}

func loadIqHistory(filename string) []string {
	var history []string

	file, err := os.Open(filename)
	if err != nil {
		return history // Return empty history if file doesn't exist
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			history = append(history, line)
		}
	}

	return history
}

func processIqQuery(snapshotData map[string]interface{}, query string) string {
	var result strings.Builder

	// Capture fmt.Print output by temporarily redirecting
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Process the query (this will write to our pipe instead of stdout)
	iq.ProcessQuery(snapshotData, query)

	// Restore stdout and read what was written
	w.Close()
	os.Stdout = oldStdout

	// Read the captured output
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			result.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	r.Close()

	output := result.String()
	if output == "" {
		return "No results found."
	}
	return strings.TrimSuffix(output, "\n")
}

func runIqInteractiveConsole(snapshotData map[string]interface{}) error {
	p := tea.NewProgram(initialIqModel(snapshotData))
	_, err := p.Run()
	return err
}

func saveIqHistory(filename string, history []string) {
	// Keep only the last 1000 commands
	maxHistory := 1000
	start := 0
	if len(history) > maxHistory {
		start = len(history) - maxHistory
	}

	file, err := os.Create(filename)
	if err != nil {
		return // Silently fail if we can't save history
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for i := start; i < len(history); i++ {
		fmt.Fprintln(writer, history[i])
	}
	writer.Flush()
}

// iqCommandBuilder constructs the cli.Command for "iq" and wires up metadata,
// flags, and the action handler.
func iqCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "iq",
		Hidden:    true,
		Usage:     "interactive snapshot console",
		UsageText: "fmctl iq [Source] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "passphrase",
				Aliases: []string{"p"},
				Usage:   "passphrase for encrypted exports",
				Value:   "",
			},
			&cli.StringFlag{
				Name:        "sv",
				Usage:       "snapshot version to query",
				Value:       "0",
				HideDefault: true,
			},
			orderFlag,
		}, NewGlobalFlags("iq")...),
		Action: iqCommandAction,
	}
}
