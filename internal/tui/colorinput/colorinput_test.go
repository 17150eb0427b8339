package colorinput

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texhue/texhue/internal/theme"
)

func typeRunes(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func pressKey(m Model, k tea.KeyType) Model {
	m, _ = m.Update(tea.KeyMsg{Type: k})
	return m
}

func TestNewDerivesFieldsFromValue(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "#2F7788CC", UseAlpha: true})

	assert.Equal(t, "2F7788", m.hex.Value())
	assert.Equal(t, "80", m.opacity.Value())
	assert.Equal(t, "#2F7788", m.pickerHex)
	assert.Equal(t, "#2F7788CC", m.Raw())
	assert.Equal(t, "#2F7788CC", m.Value())
}

func TestNewExpandsShorthand(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "2F7", UseAlpha: true})

	assert.Equal(t, "22FF77", m.hex.Value())
	assert.Equal(t, "100", m.opacity.Value())
	assert.Equal(t, "2F7", m.Raw())
}

func TestSetValueMalformedFallsBackButKeepsRawSwatch(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "#112233FF", UseAlpha: true})
	m.SetValue("not-a-color")

	assert.Equal(t, "000000", m.hex.Value())
	assert.Equal(t, "100", m.opacity.Value())
	assert.Equal(t, "not-a-color", m.Raw())
}

func TestValueRecomputesFromHexField(t *testing.T) {
	t.Parallel()

	var emitted []string
	m := New(Options{Value: "#000000FF", UseAlpha: true, OnChange: func(v string) {
		emitted = append(emitted, v)
	}})

	m.Focus(SurfaceHex)
	for i := 0; i < 6; i++ {
		m = pressKey(m, tea.KeyBackspace)
	}
	m = typeRunes(m, "a1b")

	assert.Equal(t, "#AA11BBFF", m.Value())
	// Six deletions plus three keystrokes, each live-emitted.
	assert.Len(t, emitted, 9)
	assert.Equal(t, "#AA11BBFF", emitted[len(emitted)-1])
}

func TestValueFallsBackToLastSetWhileFieldInvalid(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "#336699FF", UseAlpha: true})
	m.Focus(SurfaceHex)

	for i := 0; i < 6; i++ {
		m = pressKey(m, tea.KeyBackspace)
	}
	assert.Equal(t, "", m.hex.Value())
	assert.Equal(t, "#336699FF", m.Value())

	m.SetValue("#445566FF")
	assert.Equal(t, "#445566FF", m.Value())
}

func TestPickerCycleRewritesHexAndEmits(t *testing.T) {
	t.Parallel()

	var emitted []string
	m := New(Options{
		Value:    "#123456FF",
		UseAlpha: true,
		Palette:  []string{"#FF0000FF", "#00FF00FF"},
		OnChange: func(v string) { emitted = append(emitted, v) },
	})

	m.Focus(SurfacePicker)
	m = pressKey(m, tea.KeyRight)

	assert.Equal(t, "FF0000", m.hex.Value())
	assert.Equal(t, "#FF0000FF", m.Value())
	require.Len(t, emitted, 1)
	assert.Equal(t, "#FF0000FF", emitted[0])

	m = pressKey(m, tea.KeyRight)
	assert.Equal(t, "00FF00", m.hex.Value())

	// Wraps around.
	m = pressKey(m, tea.KeyRight)
	assert.Equal(t, "FF0000", m.hex.Value())
}

func TestPickerLeftFromUnlistedColorSelectsLastSlot(t *testing.T) {
	t.Parallel()

	m := New(Options{
		Value:    "#123456FF",
		UseAlpha: true,
		Palette:  []string{"#FF0000FF", "#00FF00FF", "#0000FFFF"},
	})

	m.Focus(SurfacePicker)
	m = pressKey(m, tea.KeyLeft)

	assert.Equal(t, "0000FF", m.hex.Value())
}

func TestHexEditTracksPickerSelection(t *testing.T) {
	t.Parallel()

	m := New(Options{
		Value:    "#123456FF",
		UseAlpha: true,
		Palette:  []string{"#AA11BBFF"},
	})

	m.Focus(SurfaceHex)
	for i := 0; i < 6; i++ {
		m = pressKey(m, tea.KeyBackspace)
	}
	m = typeRunes(m, "a1b")

	assert.Equal(t, "#AA11BB", m.pickerHex)
	assert.Equal(t, 0, m.pickerIdx)
}

func TestOpacityClampedAndRewrittenOnEnter(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "#112233FF", UseAlpha: true})
	m.Focus(SurfaceOpacity)

	for i := 0; i < 3; i++ {
		m = pressKey(m, tea.KeyBackspace)
	}
	m = typeRunes(m, "250")
	assert.Equal(t, "250", m.opacity.Value())
	assert.Equal(t, "#112233FF", m.Value(), "clamped to 100 percent while typing")

	m = pressKey(m, tea.KeyEnter)
	assert.Equal(t, "100", m.opacity.Value())
}

func TestOpacityNonNumericCountsAsFull(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "#11223380", UseAlpha: true})
	m.Focus(SurfaceOpacity)

	for i := 0; i < 3; i++ {
		m = pressKey(m, tea.KeyBackspace)
	}
	m = typeRunes(m, "abc")

	assert.Equal(t, "#112233FF", m.Value())

	m.Blur()
	assert.Equal(t, "100", m.opacity.Value(), "blur rewrites the field")
}

func TestOpacityScalesEmittedAlpha(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "#112233FF", UseAlpha: true})
	m.Focus(SurfaceOpacity)

	for i := 0; i < 3; i++ {
		m = pressKey(m, tea.KeyBackspace)
	}
	m = typeRunes(m, "50")

	assert.Equal(t, "#11223380", m.Value())
}

func TestNoAlphaModeDropsOpacitySurface(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "#11223380", UseAlpha: false})

	assert.Equal(t, []Surface{SurfaceHex, SurfacePicker}, m.Surfaces())
	assert.Equal(t, "#112233FF", m.Value(), "alpha pinned to full opacity")

	cmd := m.Focus(SurfaceOpacity)
	_ = cmd
	assert.Equal(t, SurfaceHex, m.Surface(), "opacity focus redirects to hex")
}

func TestFocusBlurHooksFireOncePerTransition(t *testing.T) {
	t.Parallel()

	var focuses, blurs int
	m := New(Options{
		Value:    "#112233FF",
		UseAlpha: true,
		OnFocus:  func() { focuses++ },
		OnBlur:   func() { blurs++ },
	})

	m.Focus(SurfaceHex)
	m.Focus(SurfacePicker)
	m.Focus(SurfaceOpacity)
	assert.Equal(t, 1, focuses, "moving between surfaces is one logical focus")

	m.Blur()
	m.Blur()
	assert.Equal(t, 1, blurs)
}

func TestUnfocusedWidgetIgnoresKeys(t *testing.T) {
	t.Parallel()

	var emitted int
	m := New(Options{Value: "#112233FF", UseAlpha: true, OnChange: func(string) { emitted++ }})

	m = typeRunes(m, "ff")

	assert.Equal(t, "112233", m.hex.Value())
	assert.Zero(t, emitted)
}

func TestSetPaletteReResolvesSelection(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "#FF0000FF", UseAlpha: true, Palette: []string{"#FF0000FF"}})
	assert.Equal(t, 0, m.pickerIdx)

	m.SetPalette([]string{"#00FF00FF", "#FF0000FF"})
	assert.Equal(t, 1, m.pickerIdx)
}

func TestViewShowsAllSurfaces(t *testing.T) {
	t.Parallel()

	m := New(Options{Value: "#2F7788CC", UseAlpha: true})
	out := m.View(theme.Get(theme.Default))

	assert.Contains(t, out, "2F7788")
	assert.Contains(t, out, "80%")
}
