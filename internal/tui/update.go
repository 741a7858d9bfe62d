// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/figrun/internal/launcher"
	"github.com/matt-FFFFFF/figrun/internal/progress"
)

const (
	minStatusBarAvailableHeight = 10
	durationRounding            = 100 * time.Millisecond
	reservedLines               = 7
)

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event progress.Event
}

// SetCompletedMsg indicates that every worker has been accounted for.
type SetCompletedMsg struct {
	Results launcher.Results
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	m.viewport, cmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.mutex.Lock()
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-reservedLines, 1)
		m.ready = true
		m.mutex.Unlock()

		return m, cmd

	case ProgressEventMsg:
		m.processEvent(msg.Event)
		return m, cmd

	case SetCompletedMsg:
		m.mutex.Lock()
		m.completed = true
		m.results = msg.Results
		m.mutex.Unlock()

		return m, cmd

	case tea.QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// handleKeyPress processes keyboard input not consumed by the viewport.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var content strings.Builder

	for _, row := range m.rows {
		m.renderRow(&content, row)
	}

	if m.completed {
		content.WriteString("\n")

		if m.results.HasFailures() {
			content.WriteString(m.styles.Failed.Render("some workers did not succeed"))
		} else {
			content.WriteString(m.styles.Success.Render("all workers completed successfully"))
		}

		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())

	var view strings.Builder

	view.WriteString(m.styles.Title.Render("figrun worker status"))
	view.WriteString("\n")
	view.WriteString(m.styles.Border.Render(m.viewport.View()))

	if m.height > minStatusBarAvailableHeight {
		view.WriteString("\n\n")
		view.WriteString(m.renderStatusBar())
		view.WriteString("\n")

		helpText := "↑/↓ to scroll, 'q' to quit"
		if m.completed {
			helpText = "all done, 'q' to quit and return to terminal"
		}

		view.WriteString(m.styles.Help.Render(helpText))
	}

	return view.String()
}

// renderRow writes one worker's line. Caller holds at least a read lock.
func (m *Model) renderRow(b *strings.Builder, row *workerRow) {
	var icon, name string

	switch row.status {
	case RowPending:
		icon = "⏳"
		name = m.styles.Pending.Render(row.name)
	case RowRunning:
		icon = "⚡"
		name = m.styles.Running.Render(row.name)
	case RowSuccess:
		icon = "✅"
		name = m.styles.Success.Render(row.name)
	case RowFailed, RowStartFailed:
		icon = "❌"
		name = m.styles.Failed.Render(row.name)
	case RowKilled:
		icon = "💀"
		name = m.styles.Failed.Render(row.name)
	default:
		icon = "❓"
		name = m.styles.Pending.Render(row.name)
	}

	b.WriteString(fmt.Sprintf("%s %s", icon, name))

	if row.started != nil {
		elapsed := time.Since(*row.started)
		if row.ended != nil {
			elapsed = row.ended.Sub(*row.started)
		}

		b.WriteString(m.styles.Sample.Render(
			fmt.Sprintf(" (%v)", elapsed.Round(durationRounding))))
	}

	if row.status == RowRunning && row.rss > 0 {
		b.WriteString(m.styles.Sample.Render(
			fmt.Sprintf("  cpu %.1f%% rss %s", row.cpu, fmtBytes(row.rss))))
	}

	if row.errMsg != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Error.Render(row.errMsg))
	}

	b.WriteString("\n")
}

// renderStatusBar summarises progress across the set.
// Caller holds at least a read lock.
func (m *Model) renderStatusBar() string {
	done, failed := m.counts()

	bar := fmt.Sprintf("%d/%d workers finished", done, len(m.rows))
	if failed > 0 {
		bar += m.styles.Failed.Render(fmt.Sprintf(", %d failed", failed))
	}

	return m.styles.Sample.Render(bar)
}
