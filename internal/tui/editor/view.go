package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View renders the editor: header, row list (or help overlay), footer.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.helpView())
	} else {
		b.WriteString(m.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.footerView())

	return b.String()
}

func (m Model) headerView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Primary)).
		Render("texhue")

	path := m.store.Path()
	if path == "" {
		path = "(in memory)"
	}
	path = runewidth.Truncate(path, max(12, m.width-24), "…")

	dirty := " "
	if m.store.Dirty() {
		dirty = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Render("●")
	}

	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TextMuted))
	return fmt.Sprintf("%s  %s %s", title, pathStyle.Render(path), dirty)
}

func (m Model) footerView() string {
	hints := "tab/shift+tab fields · ↑/↓ rows · esc browse"
	if !m.list.Focused() {
		hints = "enter edit · a add · d delete · y copy color · s save · t theme · ? help · q quit"
	}

	line := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.TextMuted)).
		Render(hints)

	if m.status == "" {
		return line
	}

	statusColor := m.theme.Primary
	if m.statusIsErr {
		statusColor = m.theme.Error
	}
	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color(statusColor)).
		Render(m.status)

	return status + "\n" + line
}

func (m Model) helpView() string {
	keyStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Primary)).
		Width(14)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))

	rows := []struct{ key, desc string }{
		{"enter / i", "edit the selected row"},
		{"tab", "next field (wraps to the next row)"},
		{"shift+tab", "previous field"},
		{"↑/↓, k/j", "select row"},
		{"←/→", "cycle palette colors (picker field)"},
		{"a, ctrl+n", "add a style"},
		{"d, ctrl+d", "delete the selected style"},
		{"y", "copy the selected color"},
		{"s, ctrl+s", "save the document"},
		{"t", "switch theme"},
		{"esc", "leave edit mode"},
		{"q, ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(keyStyle.Render(r.key))
		b.WriteString(descStyle.Render(r.desc))
		b.WriteString("\n")
	}
	b.WriteString("\npress any key to close")

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3)
	return box.Render(b.String())
}
