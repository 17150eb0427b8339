// Package rowlist keeps the rendered style rows in step with the store. It
// owns the row registry, the active-edit guard, and the write-back path from
// row inputs into the store, so external state changes and user keystrokes
// can interleave without clobbering each other.
package rowlist

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/texhue/texhue/internal/style"
	"github.com/texhue/texhue/internal/theme"
	"github.com/texhue/texhue/internal/tui/colorinput"
)

// Store is the slice of state-container behavior the row list depends on.
// The list must tolerate lists it did not produce itself.
type Store interface {
	Styles() []style.Record
	SetStyles([]style.Record)
	Subscribe(listener func()) func()
}

const occurrencesWidth = 10

// List reconciles an ordered record list against live rows. Rows are keyed
// by positional index; structural changes re-key everything in one pass.
type List struct {
	store Store
	theme theme.Theme
	unsub func()

	rows       map[int]*row
	activeEdit map[int]struct{}
	lastSeen   []style.Record

	cursor  int
	col     column
	focused bool

	width int
}

// NewList builds the row list, subscribes to the store, and renders the
// current state.
func NewList(st Store, t theme.Theme) *List {
	l := &List{
		store:      st,
		theme:      t,
		rows:       make(map[int]*row),
		activeEdit: make(map[int]struct{}),
		width:      80,
	}
	l.unsub = st.Subscribe(l.onStoreChange)
	l.Render(st.Styles())
	return l
}

// onStoreChange is the subscription entry point. Length changes force a full
// render; otherwise only rows whose record changed are patched in place.
func (l *List) onStoreChange() {
	styles := l.store.Styles()

	if len(styles) != len(l.lastSeen) {
		l.Render(styles)
		return
	}

	for i, rec := range styles {
		if rec == l.lastSeen[i] {
			continue
		}
		if r, ok := l.rows[i]; ok {
			l.patch(r, rec)
		}
	}
	l.lastSeen = styles
}

// Render performs a full reconciliation pass: rows whose index fell off the
// end are destroyed (and evicted from the active-edit set), surviving rows
// are patched, and missing rows are constructed.
func (l *List) Render(styles []style.Record) {
	for idx, r := range l.rows {
		if idx >= len(styles) {
			l.destroyRow(idx, r)
		}
	}

	for i, rec := range styles {
		if r, ok := l.rows[i]; ok {
			l.patch(r, rec)
		} else {
			l.rows[i] = l.newRow(i, rec)
		}
	}

	l.lastSeen = styles
	l.clampCursor()
	l.applyFocus()
}

// Destroy unsubscribes from the store and clears every registry.
func (l *List) Destroy() {
	if l.unsub != nil {
		l.unsub()
		l.unsub = nil
	}
	for idx, r := range l.rows {
		r.blurAll()
		delete(l.rows, idx)
	}
	l.activeEdit = make(map[int]struct{})
	l.lastSeen = nil
	l.focused = false
}

func (l *List) destroyRow(idx int, r *row) {
	r.blurAll()
	delete(l.activeEdit, idx)
	delete(l.rows, idx)
}

// Add appends a record with an empty expression, a default color derived
// from the current theme and row count, and no occurrence selector, then
// moves focus to the new row.
func (l *List) Add() tea.Cmd {
	styles := l.store.Styles()
	rec := style.Record{Color: theme.DefaultColor(l.theme, len(styles))}
	l.store.SetStyles(append(styles, rec))

	l.cursor = len(l.lastSeen) - 1
	l.col = colExpression
	l.focused = true
	return l.applyFocus()
}

// RemoveCurrent filters the cursor row's record out and writes the shortened
// list back; reconciliation re-keys the remainder and drops the trailing row.
func (l *List) RemoveCurrent() tea.Cmd {
	if len(l.lastSeen) == 0 {
		return nil
	}

	idx := l.cursor
	if r, ok := l.rows[idx]; ok {
		r.blurAll()
	}

	styles := l.store.Styles()
	if idx >= len(styles) {
		return nil
	}
	l.store.SetStyles(append(styles[:idx], styles[idx+1:]...))

	return l.applyFocus()
}

// ShowError displays a message for one field of one row.
func (l *List) ShowError(rowIndex int, field style.Field, message string) {
	if r, ok := l.rows[rowIndex]; ok {
		r.errors[field] = message
	}
}

// ClearError removes the message for one field of one row.
func (l *List) ClearError(rowIndex int, field style.Field) {
	if r, ok := l.rows[rowIndex]; ok {
		delete(r.errors, field)
	}
}

// ClearAllErrors removes every displayed error.
func (l *List) ClearAllErrors() {
	for _, r := range l.rows {
		for f := range r.errors {
			delete(r.errors, f)
		}
	}
}

// SetTheme swaps the palette offered by every row's picker.
func (l *List) SetTheme(t theme.Theme) {
	l.theme = t
	for _, r := range l.rows {
		r.color.SetPalette(t.Highlights)
	}
}

// SetWidth resizes the flexible expression column.
func (l *List) SetWidth(w int) {
	l.width = w
	for _, r := range l.rows {
		r.expression.Width = l.expressionWidth()
	}
}

// Focus gives the list input focus at the cursor row's expression field.
func (l *List) Focus() tea.Cmd {
	if len(l.lastSeen) == 0 {
		return nil
	}
	l.focused = true
	return l.applyFocus()
}

// Blur drops input focus from the whole list.
func (l *List) Blur() {
	l.focused = false
	l.applyFocus()
}

// Focused reports whether the list has input focus.
func (l *List) Focused() bool {
	return l.focused
}

// Cursor returns the index of the selected row.
func (l *List) Cursor() int {
	return l.cursor
}

// Count returns the number of rendered rows.
func (l *List) Count() int {
	return len(l.lastSeen)
}

// FocusNext advances to the next input, wrapping across rows.
func (l *List) FocusNext() tea.Cmd {
	if len(l.lastSeen) == 0 {
		return nil
	}
	if !l.focused {
		l.focused = true
		l.col = colExpression
		return l.applyFocus()
	}

	if l.col == lastColumn {
		l.col = colExpression
		l.cursor = (l.cursor + 1) % len(l.lastSeen)
	} else {
		l.col++
	}
	return l.applyFocus()
}

// FocusPrev moves to the previous input, wrapping across rows.
func (l *List) FocusPrev() tea.Cmd {
	if len(l.lastSeen) == 0 {
		return nil
	}
	if !l.focused {
		l.focused = true
		l.col = lastColumn
		l.cursor = len(l.lastSeen) - 1
		return l.applyFocus()
	}

	if l.col == colExpression {
		l.col = lastColumn
		l.cursor = (l.cursor - 1 + len(l.lastSeen)) % len(l.lastSeen)
	} else {
		l.col--
	}
	return l.applyFocus()
}

// CursorUp selects the previous row, keeping the focused column.
func (l *List) CursorUp() tea.Cmd {
	if len(l.lastSeen) == 0 {
		return nil
	}
	l.cursor = (l.cursor - 1 + len(l.lastSeen)) % len(l.lastSeen)
	return l.applyFocus()
}

// CursorDown selects the next row, keeping the focused column.
func (l *List) CursorDown() tea.Cmd {
	if len(l.lastSeen) == 0 {
		return nil
	}
	l.cursor = (l.cursor + 1) % len(l.lastSeen)
	return l.applyFocus()
}

// Update routes a message to the focused input and writes any resulting
// value change straight back into the store. Writing clears the edited
// field's error so stale messages never outlive an edit.
func (l *List) Update(msg tea.Msg) tea.Cmd {
	if !l.focused || len(l.lastSeen) == 0 {
		return nil
	}
	r, ok := l.rows[l.cursor]
	if !ok {
		return nil
	}

	var cmd tea.Cmd
	switch l.col {
	case colExpression:
		before := r.expression.Value()
		r.expression, cmd = r.expression.Update(msg)
		if r.expression.Value() != before {
			l.ClearError(r.index, style.FieldTex)
			l.writeExpression(r)
		}

	case colOccurrences:
		before := r.occurrences.Value()
		r.occurrences, cmd = r.occurrences.Update(msg)
		if r.occurrences.Value() != before {
			l.ClearError(r.index, style.FieldOccurrences)
			l.writeOccurrences(r)
		}

	default:
		r.color, cmd = r.color.Update(msg)
	}

	return cmd
}

// View renders every row in index order.
func (l *List) View() string {
	if len(l.lastSeen) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(l.theme.TextMuted)).
			Italic(true).
			Render("  no styles yet, press ctrl+n to add one")
	}

	lines := make([]string, 0, len(l.lastSeen))
	for i := 0; i < len(l.lastSeen); i++ {
		r, ok := l.rows[i]
		if !ok {
			continue
		}
		lines = append(lines, r.view(l.theme, l.focused && i == l.cursor))
	}
	return strings.Join(lines, "\n")
}

func (l *List) writeExpression(r *row) {
	styles := l.store.Styles()
	if r.index >= len(styles) {
		return
	}
	styles[r.index].Expression = strings.TrimSpace(r.expression.Value())
	l.store.SetStyles(styles)
}

func (l *List) writeOccurrences(r *row) {
	styles := l.store.Styles()
	if r.index >= len(styles) {
		return
	}
	styles[r.index].Occurrences = strings.TrimSpace(r.occurrences.Value())
	l.store.SetStyles(styles)
}

// writeColor lands a widget-emitted value in the store. The active-edit
// guard keeps the notification pass this triggers from writing back into the
// widget mid-edit.
func (l *List) writeColor(r *row, hex8 string) {
	l.ClearError(r.index, style.FieldColor)

	styles := l.store.Styles()
	if r.index >= len(styles) {
		return
	}
	styles[r.index].Color = hex8
	l.store.SetStyles(styles)
}

func (l *List) clampCursor() {
	if len(l.lastSeen) == 0 {
		l.cursor = 0
		l.focused = false
		return
	}
	if l.cursor >= len(l.lastSeen) {
		l.cursor = len(l.lastSeen) - 1
	}
}

// applyFocus makes input focus agree with cursor, column, and focused flag.
// The color widget's own focus hooks maintain the active-edit set.
func (l *List) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for _, r := range l.rows {
		if l.focused && r.index == l.cursor {
			cmd = l.focusColumn(r)
			continue
		}
		r.blurAll()
	}
	return cmd
}

func (l *List) focusColumn(r *row) tea.Cmd {
	switch l.col {
	case colExpression:
		r.occurrences.Blur()
		r.color.Blur()
		return r.expression.Focus()
	case colOccurrences:
		r.expression.Blur()
		r.color.Blur()
		return r.occurrences.Focus()
	default:
		r.expression.Blur()
		r.occurrences.Blur()
		return r.color.Focus(surfaceFor(l.col))
	}
}

func surfaceFor(c column) colorinput.Surface {
	switch c {
	case colPicker:
		return colorinput.SurfacePicker
	case colOpacity:
		return colorinput.SurfaceOpacity
	default:
		return colorinput.SurfaceHex
	}
}

func (l *List) expressionWidth() int {
	w := l.width - 48
	if w < 16 {
		return 16
	}
	if w > 40 {
		return 40
	}
	return w
}
