// Package theme defines the editor's color themes: UI chrome colors plus an
// ordered highlight palette that seeds default colors for new rules.
package theme

import (
	"github.com/texhue/texhue/internal/hexcolor"
)

// Theme is a complete palette for the editor UI. Highlight entries are hex8
// strings in document order; new rules take colors from this list.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// UI chrome
	Bg          string // main background
	Text        string // primary text
	TextMuted   string // labels, help, placeholders
	Primary     string // accents, focused titles
	Border      string // resting borders
	BorderFocus string // focused element borders (defaults to Primary if empty)
	Error       string // field errors, failure banner
	Warning     string // unsaved-changes marker

	// Highlights is the ordered default-color palette for new rules.
	Highlights []string
}

// GetBorderFocus returns the focused border color, defaulting to Primary.
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// Background returns the theme background as a parsed color, for
// alpha-compositing swatch previews.
func (t Theme) Background() hexcolor.RGBA {
	return hexcolor.ParseWithAlpha(t.Bg)
}

// Name is a type for theme identifiers.
type Name string

// Available theme names.
const (
	ThemeTexDark  Name = "tex-dark"
	ThemeTexLight Name = "tex-light"
	ThemeNord     Name = "nord"
	ThemeDracula  Name = "dracula"
)

// Default is the theme used when no configuration names one.
const Default = ThemeTexDark

// BuiltinThemes contains all built-in themes.
var BuiltinThemes = map[Name]Theme{
	ThemeTexDark: {
		Name:        "Tex Dark",
		Bg:          "#1F2430",
		Text:        "#E6E1CF",
		TextMuted:   "#707A8C",
		Primary:     "#73D0FF",
		Border:      "#343C4A",
		BorderFocus: "#73D0FF",
		Error:       "#FF6666",
		Warning:     "#FFCC66",
		Highlights: []string{
			"#73D0FFFF",
			"#FFCC66FF",
			"#BAE67EFF",
			"#F28779FF",
			"#D4BFFFFF",
			"#95E6CBFF",
			"#FFA759FF",
			"#F29E74FF",
		},
	},
	ThemeTexLight: {
		Name:        "Tex Light",
		Bg:          "#FAFAFA",
		Text:        "#5C6166",
		TextMuted:   "#A0A6AC",
		Primary:     "#399EE6",
		Border:      "#E0E0E0",
		BorderFocus: "#399EE6",
		Error:       "#E65050",
		Warning:     "#F2AE49",
		Highlights: []string{
			"#399EE6FF",
			"#F2AE49FF",
			"#86B300FF",
			"#E65050FF",
			"#A37ACCFF",
			"#4CBF99FF",
			"#FA8D3EFF",
			"#ED9366FF",
		},
	},
	ThemeNord: {
		Name:        "Nord",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		Primary:     "#88C0D0",
		Border:      "#4C566A",
		Error:       "#BF616A",
		Warning:     "#EBCB8B",
		Highlights: []string{
			"#88C0D0FF",
			"#EBCB8BFF",
			"#A3BE8CFF",
			"#BF616AFF",
			"#B48EADFF",
			"#81A1C1FF",
			"#D08770FF",
			"#5E81ACFF",
		},
	},
	ThemeDracula: {
		Name:        "Dracula",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		Primary:     "#BD93F9",
		Border:      "#44475A",
		Error:       "#FF5555",
		Warning:     "#FFB86C",
		Highlights: []string{
			"#BD93F9FF",
			"#FFB86CFF",
			"#50FA7BFF",
			"#FF5555FF",
			"#FF79C6FF",
			"#8BE9FDFF",
			"#F1FA8CFF",
			"#6272A4FF",
		},
	},
}

// Names returns all available theme names in display order.
func Names() []Name {
	return []Name{
		ThemeTexDark,
		ThemeTexLight,
		ThemeNord,
		ThemeDracula,
	}
}

// Get returns a theme by name, defaulting to Tex Dark if not found.
func Get(name Name) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[Default]
}

// DefaultColor assigns a highlight color for the rule at the given ordinal,
// cycling through the theme's highlight palette. The result is canonical
// hex8.
func DefaultColor(t Theme, ordinal int) string {
	if len(t.Highlights) == 0 {
		t = BuiltinThemes[Default]
	}
	if ordinal < 0 {
		ordinal = 0
	}
	return hexcolor.Normalize(t.Highlights[ordinal%len(t.Highlights)])
}

// WithHighlights returns a copy of the theme using the given highlight
// palette, e.g. one loaded from a palette pack.
func WithHighlights(t Theme, colors []string) Theme {
	if len(colors) == 0 {
		return t
	}
	normalized := make([]string, len(colors))
	for i, c := range colors {
		normalized[i] = hexcolor.Normalize(c)
	}
	t.Highlights = normalized
	return t
}
