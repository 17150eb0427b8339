package editor

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/texhue/texhue/internal/theme"
)

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(m.width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.shutdown()
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if key != "q" {
		m.pendingQuit = false
	}

	if m.list.Focused() {
		return m.handleEditKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// handleEditKey runs while an input has focus: navigation keys move focus,
// everything else is routed into the focused input.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.list.Blur()
		return m, nil
	case "tab":
		return m, m.list.FocusNext()
	case "shift+tab":
		return m, m.list.FocusPrev()
	case "up":
		return m, m.list.CursorUp()
	case "down":
		return m, m.list.CursorDown()
	case "ctrl+n":
		return m, m.list.Add()
	case "ctrl+d":
		return m, m.list.RemoveCurrent()
	case "ctrl+s":
		m.save()
		return m, nil
	}

	return m, m.list.Update(msg)
}

// handleBrowseKey runs while nothing is focused, so single letters are safe
// to treat as commands.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.store.Dirty() && !m.pendingQuit {
			m.pendingQuit = true
			m.setStatus("unsaved changes: press q again to discard, s to save", true)
			return m, nil
		}
		m.shutdown()
		return m, tea.Quit

	case "enter", "i", "tab":
		return m, m.list.Focus()

	case "up", "k":
		return m, m.list.CursorUp()
	case "down", "j":
		return m, m.list.CursorDown()

	case "ctrl+n", "a":
		return m, m.list.Add()
	case "ctrl+d", "d":
		return m, m.list.RemoveCurrent()

	case "s", "ctrl+s":
		m.save()
		return m, nil

	case "y":
		m.yank()
		return m, nil

	case "t":
		m.cycleTheme()
		return m, nil

	case "?":
		m.showHelp = true
		return m, nil
	}

	return m, nil
}

func (m *Model) save() {
	if err := m.store.Save(); err != nil {
		m.log.Error(err, "save failed")
		m.setStatus(fmt.Sprintf("save failed: %v", err), true)
		return
	}

	count := len(m.store.Styles())
	m.log.WithFields(map[string]any{"styles": count, "path": m.store.Path()}).Info("document saved")
	m.setStatus(fmt.Sprintf("saved %d styles", count), false)
}

// yank copies the selected row's color to the system clipboard.
func (m *Model) yank() {
	styles := m.store.Styles()
	if len(styles) == 0 {
		m.setStatus("nothing to copy", true)
		return
	}

	color := styles[m.list.Cursor()].Color
	if err := clipboard.WriteAll(color); err != nil {
		m.log.Error(err, "clipboard write failed")
		m.setStatus(fmt.Sprintf("clipboard: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("copied %s", color), false)
}

// cycleTheme advances to the next built-in theme. New default colors and
// picker palettes follow immediately; existing row colors stay as they are.
func (m *Model) cycleTheme() {
	names := theme.Names()
	next := names[0]
	for i, n := range names {
		if n == m.themeName {
			next = names[(i+1)%len(names)]
			break
		}
	}

	m.themeName = next
	m.theme = theme.Get(next)
	if len(m.highlights) > 0 {
		m.theme = theme.WithHighlights(m.theme, m.highlights)
	}
	m.list.SetTheme(m.theme)
	m.store.SetTheme(string(next))
	m.setStatus(fmt.Sprintf("theme: %s", next), false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusIsErr = isErr
}
