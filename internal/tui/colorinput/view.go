package colorinput

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/texhue/texhue/internal/theme"
)

const swatchCell = "  "

// View renders the widget on one line: swatch, hex field, palette picker,
// and the opacity field when alpha is enabled.
func (m Model) View(t theme.Theme) string {
	swatch := lipgloss.NewStyle().
		Background(theme.SwatchColor(t, m.raw)).
		Render(swatchCell)

	parts := []string{swatch, m.hex.View(), m.pickerView(t)}
	if m.useAlpha {
		parts = append(parts, m.opacityView(t))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, joinWithGap(parts)...)
}

// pickerView shows the picker's current hex6 as a colored cell. Arrows appear
// while the picker has focus to hint at left/right cycling.
func (m Model) pickerView(t theme.Theme) string {
	cell := lipgloss.NewStyle().
		Background(lipgloss.Color(m.pickerHex)).
		Render(swatchCell)

	if m.focused && m.surface == SurfacePicker {
		arrow := lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderFocus))
		return arrow.Render("◂") + cell + arrow.Render("▸")
	}
	return " " + cell + " "
}

func (m Model) opacityView(t theme.Theme) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	if m.focused && m.surface == SurfaceOpacity {
		return m.opacity.View() + style.Render("%")
	}
	return style.Render(m.OpacityDisplay())
}

func joinWithGap(parts []string) []string {
	joined := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			joined = append(joined, " ")
		}
		joined = append(joined, p)
	}
	return joined
}
