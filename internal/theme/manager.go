package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/texhue/texhue/internal/hexcolor"
)

// Manager coordinates access to the active theme.
type Manager struct {
	mu    sync.RWMutex
	theme Theme
}

// NewManager allocates a Manager with the provided theme.
func NewManager(theme Theme) *Manager {
	return &Manager{theme: cloneTheme(theme)}
}

// SetTheme replaces the managed theme.
func (m *Manager) SetTheme(theme Theme) {
	m.mu.Lock()
	m.theme = cloneTheme(theme)
	m.mu.Unlock()
}

// Theme returns a copy of the managed theme.
func (m *Manager) Theme() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTheme(m.theme)
}

func cloneTheme(theme Theme) Theme {
	theme.Highlights = append([]string(nil), theme.Highlights...)
	return theme
}

// SwatchColor yields the terminal color a swatch cell paints with. Valid hex
// strings are flattened against the theme background; anything else passes
// through raw, so an unparseable value degrades to an uncolored cell instead
// of masquerading as black.
func SwatchColor(t Theme, raw string) lipgloss.Color {
	if !hexcolor.ValidShorthand(raw) {
		return lipgloss.Color(raw)
	}
	flattened := hexcolor.ParseWithAlpha(raw).Composite(t.Background())
	return lipgloss.Color(flattened.Hex6())
}

// LabelColor picks black or white for text drawn over the given color.
func LabelColor(c hexcolor.RGBA) lipgloss.Color {
	if c.Luminance() > 0.5 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#FFFFFF")
}
