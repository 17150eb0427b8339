// Package editor hosts the interactive style editor: a store-backed row
// list, live linting, theme switching, and save/yank actions.
package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/texhue/texhue/internal/lint"
	"github.com/texhue/texhue/internal/logger"
	"github.com/texhue/texhue/internal/store"
	"github.com/texhue/texhue/internal/style"
	"github.com/texhue/texhue/internal/theme"
	"github.com/texhue/texhue/internal/tui/rowlist"
)

// Model is the top-level editor model.
type Model struct {
	// Collaborators
	store *store.Store
	list  *rowlist.List
	log   *logger.Logger
	unsub func()

	// UI state
	theme      theme.Theme
	themeName  theme.Name
	highlights []string
	showHelp   bool

	// Status line
	status      string
	statusIsErr bool
	pendingQuit bool

	// Dimensions
	width  int
	height int
}

// NewModel wires the editor to a store. Lint results for the initial state
// are pushed into the row list immediately, and refreshed on every change.
func NewModel(st *store.Store, log *logger.Logger) Model {
	name := theme.Name(st.Theme())
	th := theme.Get(name)

	list := rowlist.NewList(st, th)
	unsub := st.Subscribe(func() {
		relint(st, list)
	})
	relint(st, list)

	return Model{
		store:     st,
		list:      list,
		log:       log,
		unsub:     unsub,
		theme:     th,
		themeName: name,
		width:     80,
		height:    24,
	}
}

// WithPalette overrides the highlight palette for this session, e.g. with
// colors loaded from a palette pack. Default colors for new rules and the
// picker cycle both follow the override; it survives theme switching.
func (m Model) WithPalette(colors []string) Model {
	if len(colors) == 0 {
		return m
	}
	m.highlights = colors
	m.theme = theme.WithHighlights(m.theme, colors)
	m.list.SetTheme(m.theme)
	return m
}

// Init implements tea.Model. The editor starts in browse mode with nothing
// focused, so there is no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// relint recomputes field problems for the whole list and reconciles the
// displayed errors with them, field by field.
func relint(st *store.Store, list *rowlist.List) {
	problems := lint.CheckAll(st.Styles())

	fields := []style.Field{style.FieldTex, style.FieldColor, style.FieldOccurrences}
	for i := 0; i < list.Count(); i++ {
		rowProblems := problems[i]
		for _, f := range fields {
			msg, found := "", false
			for _, p := range rowProblems {
				if p.Field == f {
					msg, found = p.Message, true
					break
				}
			}
			if found {
				list.ShowError(i, f, msg)
			} else {
				list.ClearError(i, f)
			}
		}
	}
}

// shutdown releases the subscription and the row registries before quitting.
func (m *Model) shutdown() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	m.list.Destroy()
}
