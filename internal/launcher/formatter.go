// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OutputOptions controls what is included in the rendered results.
type OutputOptions struct {
	IncludeStdOut      bool // Whether to include worker stdout
	IncludeStdErr      bool // Whether to include worker stderr
	ShowSuccessDetails bool // Whether to show output for successful workers too
}

// DefaultOutputOptions returns a default set of output options.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeStdOut:      false,
		IncludeStdErr:      true,
		ShowSuccessDetails: false,
	}
}

var (
	successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).SetString("✓")
	failMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).SetString("✗")
	killedMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).SetString("~")
	unknownMark = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).SetString("?")

	successLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failLabel    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	killedLabel  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Print renders the results to stdout with default options.
func (r Results) Print() error {
	return r.WriteTextWithOptions(os.Stdout, nil)
}

// WriteText renders the results to the given writer with default options.
func (r Results) WriteText(w io.Writer) error {
	return r.WriteTextWithOptions(w, nil)
}

// WriteTextWithOptions renders one status line per worker, with optional
// captured output for failed (or, on request, all) workers.
func (r Results) WriteTextWithOptions(w io.Writer, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for _, res := range r {
		if res == nil {
			continue
		}

		if err := writeResult(w, res, options); err != nil {
			return err
		}
	}

	return nil
}

func writeResult(w io.Writer, res *Result, options *OutputOptions) error {
	var mark, label string

	switch res.Status {
	case StatusSuccess:
		mark = successMark.String()
		label = successLabel.Render(res.Worker)
	case StatusFailed, StatusStartFailed:
		mark = failMark.String()
		label = failLabel.Render(res.Worker)
	case StatusKilled:
		mark = killedMark.String()
		label = killedLabel.Render(res.Worker)
	default:
		mark = unknownMark.String()
		label = res.Worker
	}

	if _, err := fmt.Fprintf(w, "%s %s", mark, label); err != nil {
		return err
	}

	if res.ExitCode != 0 {
		fmt.Fprintf(w, " (exit code: %d)", res.ExitCode) //nolint:errcheck
	}

	if res.Duration > 0 {
		fmt.Fprintf(w, " %s", dimStyle.Render(res.Duration.String())) //nolint:errcheck
	}

	fmt.Fprintln(w) //nolint:errcheck

	if res.Error != nil {
		fmt.Fprintf(w, "  %s %s\n", errStyle.Render("➜ Error:"), res.Error.Error()) //nolint:errcheck
	}

	showDetails := res.Status != StatusSuccess || options.ShowSuccessDetails

	if showDetails && options.IncludeStdOut && len(res.StdOut) > 0 {
		fmt.Fprintf(w, "  ➜ Output:\n%s", indentOutput(res.StdOut, "     ")) //nolint:errcheck
	}

	if showDetails && options.IncludeStdErr && len(res.StdErr) > 0 {
		fmt.Fprintf(w, "  %s\n%s", errStyle.Render("➜ Error Output:"), indentOutput(res.StdErr, "     ")) //nolint:errcheck
	}

	return nil
}

// indentOutput prefixes every non-empty line of output with indent.
func indentOutput(output []byte, indent string) string {
	sb := strings.Builder{}
	lines := strings.Split(string(output), "\n")
	sb.Grow(len(output) + len(lines)*len(indent))

	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
