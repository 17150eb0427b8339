package rowlist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/texhue/texhue/internal/style"
	"github.com/texhue/texhue/internal/theme"
	"github.com/texhue/texhue/internal/tui/colorinput"
)

// column identifies one focusable input within a row, in visual order.
type column int

const (
	colExpression column = iota
	colHex
	colPicker
	colOpacity
	colOccurrences
)

const lastColumn = colOccurrences

// row binds one style record's inputs to its current list position. Identity
// is positional: index is rewritten whenever the list shifts, and the change
// callbacks read it at call time so they always target the current slot.
type row struct {
	index int

	expression  textinput.Model
	color       colorinput.Model
	occurrences textinput.Model

	errors map[style.Field]string
}

// newRow builds a row displaying rec. The color widget's callbacks close
// over the row pointer, not the index value.
func (l *List) newRow(index int, rec style.Record) *row {
	expression := textinput.New()
	expression.Prompt = ""
	expression.Placeholder = "expression"
	expression.Width = l.expressionWidth()
	expression.SetValue(sanitize(rec.Expression))

	occurrences := textinput.New()
	occurrences.Prompt = ""
	occurrences.Placeholder = "all"
	occurrences.CharLimit = 24
	occurrences.Width = occurrencesWidth
	occurrences.SetValue(sanitize(rec.Occurrences))

	r := &row{
		index:       index,
		expression:  expression,
		occurrences: occurrences,
		errors:      make(map[style.Field]string),
	}

	r.color = colorinput.New(colorinput.Options{
		Value:    rec.Color,
		UseAlpha: true,
		Palette:  l.theme.Highlights,
		OnChange: func(hex8 string) {
			l.writeColor(r, hex8)
		},
		OnFocus: func() {
			l.activeEdit[r.index] = struct{}{}
		},
		OnBlur: func() {
			delete(l.activeEdit, r.index)
		},
	})

	return r
}

// patch updates the row's inputs toward rec. Text fields are rewritten only
// when their displayed value differs, so an untouched field keeps its cursor.
// The color widget is left alone entirely while its row is mid-edit.
func (l *List) patch(r *row, rec style.Record) {
	if target := sanitize(rec.Expression); r.expression.Value() != target {
		r.expression.SetValue(target)
	}

	if _, editing := l.activeEdit[r.index]; !editing {
		if r.color.Value() != rec.Color {
			r.color.SetValue(rec.Color)
		}
	}

	if target := sanitize(rec.Occurrences); r.occurrences.Value() != target {
		r.occurrences.SetValue(target)
	}
}

// sanitize strips terminal escape sequences from externally supplied text
// before it is inserted into an input.
func sanitize(s string) string {
	return ansi.Strip(s)
}

// view renders the row line plus any error lines beneath it.
func (r *row) view(t theme.Theme, selected bool) string {
	marker := "  "
	markerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border))
	if selected {
		marker = "▌ "
		markerStyle = markerStyle.Foreground(lipgloss.Color(t.BorderFocus))
	}

	ordinal := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.TextMuted)).
		Render(fmt.Sprintf("%2d", r.index+1))

	line := lipgloss.JoinHorizontal(lipgloss.Center,
		markerStyle.Render(marker),
		ordinal, " ",
		r.expression.View(), "  ",
		r.color.View(t), "  ",
		r.occurrences.View(),
	)

	errLines := r.errorLines(t)
	if errLines == "" {
		return line
	}
	return line + "\n" + errLines
}

// errorLines renders the row's field errors in a fixed field order.
func (r *row) errorLines(t theme.Theme) string {
	if len(r.errors) == 0 {
		return ""
	}

	fields := make([]string, 0, len(r.errors))
	for f := range r.errors {
		fields = append(fields, string(f))
	}
	sort.Slice(fields, func(i, j int) bool {
		return fieldRank(style.Field(fields[i])) < fieldRank(style.Field(fields[j]))
	})

	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error))
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		msg := r.errors[style.Field(f)]
		lines = append(lines, errStyle.Render(fmt.Sprintf("      ✗ %s: %s", f, msg)))
	}
	return strings.Join(lines, "\n")
}

func fieldRank(f style.Field) int {
	switch f {
	case style.FieldTex:
		return 0
	case style.FieldColor:
		return 1
	default:
		return 2
	}
}

// blurAll drops focus from every input in the row.
func (r *row) blurAll() {
	r.expression.Blur()
	r.occurrences.Blur()
	r.color.Blur()
}
