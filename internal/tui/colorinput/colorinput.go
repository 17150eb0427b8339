// Package colorinput implements the color control embedded in every style
// row: a swatch preview, a hex text field, a palette picker, and an optional
// opacity field, all kept consistent with one underlying color value.
package colorinput

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/texhue/texhue/internal/hexcolor"
)

// Surface identifies one of the widget's focusable inputs.
type Surface int

const (
	SurfaceHex Surface = iota
	SurfacePicker
	SurfaceOpacity
)

var hexFieldPattern = regexp.MustCompile(`^[0-9a-fA-F]{1,6}$`)

// Options configures a new Model.
type Options struct {
	// Value is the initial color, canonically #RRGGBBAA but any shorthand
	// accepted by hexcolor is tolerated.
	Value string
	// UseAlpha controls whether the opacity field exists. When false every
	// emitted value carries full opacity.
	UseAlpha bool
	// Palette supplies the picker's selectable colors, usually the active
	// theme's highlight cycle.
	Palette []string
	// OnChange receives the recomputed hex8 value after every edit.
	OnChange func(hex8 string)
	// OnFocus and OnBlur fire when the widget as a whole gains or loses
	// focus, regardless of which of the three surfaces is involved.
	OnFocus func()
	OnBlur  func()
}

// Model is the widget state. All three visual fields derive from one value;
// user edits flow back through Value().
type Model struct {
	hex     textinput.Model
	opacity textinput.Model

	palette   []string
	pickerIdx int
	pickerHex string

	// raw is whatever string was last shown to the swatch, kept verbatim so
	// the preview reflects exactly what the caller or user produced.
	raw string
	// lastValue is the most recent externally-set value, returned by Value
	// while the hex field holds text that does not parse.
	lastValue string

	useAlpha bool
	focused  bool
	surface  Surface

	onChange func(string)
	onFocus  func()
	onBlur   func()
}

// New constructs a widget displaying opts.Value.
func New(opts Options) Model {
	hex := textinput.New()
	hex.CharLimit = 6
	hex.Width = 7
	hex.Prompt = "#"

	opacity := textinput.New()
	opacity.CharLimit = 3
	opacity.Width = 3
	opacity.Prompt = ""

	m := Model{
		hex:       hex,
		opacity:   opacity,
		pickerIdx: -1,
		useAlpha:  opts.UseAlpha,
		onChange:  opts.OnChange,
		onFocus:   opts.OnFocus,
		onBlur:    opts.OnBlur,
	}
	m.setPalette(opts.Palette)
	m.applyValue(opts.Value)
	return m
}

// SetValue resets the widget to the given color. Malformed input falls back
// to opaque black in the text and opacity fields, but the swatch keeps
// rendering the raw string as given.
func (m *Model) SetValue(value string) {
	m.applyValue(value)
}

func (m *Model) applyValue(value string) {
	parsed := hexcolor.ParseWithAlpha(value)

	m.raw = value
	m.lastValue = value
	m.hex.SetValue(strings.TrimPrefix(parsed.Hex6(), "#"))
	m.pickerHex = parsed.Hex6()
	m.pickerIdx = m.paletteIndex(m.pickerHex)
	if m.useAlpha {
		m.opacity.SetValue(strconv.Itoa(int(math.Round(parsed.A * 100))))
	}
}

// Value recomputes the hex8 color from the current fields. While the hex
// field holds text outside the 1-6 digit hex pattern, the last externally
// set value is returned instead, so transiently clearing the field never
// loses the committed color.
func (m Model) Value() string {
	digits := m.hex.Value()
	if !hexFieldPattern.MatchString(digits) {
		return m.lastValue
	}

	parsed := hexcolor.ParseWithAlpha(digits)
	alpha := 1.0
	if m.useAlpha {
		alpha = float64(m.opacityPercent()) / 100
	}
	return hexcolor.ToHex8(parsed.R, parsed.G, parsed.B, alpha)
}

// Raw returns the string the swatch currently previews.
func (m Model) Raw() string {
	return m.raw
}

// opacityPercent reads the opacity field clamped to [0,100]. Anything that
// does not parse as an integer counts as 100.
func (m Model) opacityPercent() int {
	n, err := strconv.Atoi(strings.TrimSpace(m.opacity.Value()))
	if err != nil {
		return 100
	}
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Surfaces returns the focusable surfaces in visual order.
func (m Model) Surfaces() []Surface {
	if m.useAlpha {
		return []Surface{SurfaceHex, SurfacePicker, SurfaceOpacity}
	}
	return []Surface{SurfaceHex, SurfacePicker}
}

// Focused reports whether any surface has focus.
func (m Model) Focused() bool {
	return m.focused
}

// Surface returns the currently focused surface. Meaningful only while
// Focused() is true.
func (m Model) Surface() Surface {
	return m.surface
}

// Focus gives input focus to one surface, firing OnFocus on the transition
// from unfocused to focused.
func (m *Model) Focus(s Surface) tea.Cmd {
	if s == SurfaceOpacity && !m.useAlpha {
		s = SurfaceHex
	}

	wasFocused := m.focused
	m.focused = true
	m.surface = s

	m.hex.Blur()
	m.opacity.Blur()

	var cmd tea.Cmd
	switch s {
	case SurfaceHex:
		cmd = m.hex.Focus()
	case SurfaceOpacity:
		cmd = m.opacity.Focus()
	}

	if !wasFocused && m.onFocus != nil {
		m.onFocus()
	}
	return cmd
}

// Blur removes focus from every surface, firing OnBlur on the transition.
// The opacity field is re-clamped and rewritten on the way out so it never
// displays an out-of-range value.
func (m *Model) Blur() {
	if !m.focused {
		return
	}

	if m.useAlpha && m.surface == SurfaceOpacity {
		m.commitOpacity()
	}

	m.focused = false
	m.hex.Blur()
	m.opacity.Blur()

	if m.onBlur != nil {
		m.onBlur()
	}
}

// Update routes a message to the focused surface. Every edit that changes a
// field re-emits the recomputed value; there is no pending state.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch m.surface {
	case SurfacePicker:
		switch key.Type {
		case tea.KeyLeft:
			m.cyclePicker(-1)
			return m, nil
		case tea.KeyRight:
			m.cyclePicker(1)
			return m, nil
		}
		return m, nil

	case SurfaceOpacity:
		if key.Type == tea.KeyEnter {
			m.commitOpacity()
			return m, nil
		}
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.surface {
	case SurfaceHex:
		before := m.hex.Value()
		m.hex, cmd = m.hex.Update(msg)
		if m.hex.Value() != before {
			m.syncPickerFromHex()
			m.emitChange()
		}
	case SurfaceOpacity:
		before := m.opacity.Value()
		m.opacity, cmd = m.opacity.Update(msg)
		if m.opacity.Value() != before {
			m.emitChange()
		}
	}

	return m, cmd
}

// cyclePicker moves the palette selection and re-synchronizes the hex text
// from the picker's 6-digit value.
func (m *Model) cyclePicker(delta int) {
	if len(m.palette) == 0 {
		return
	}

	if m.pickerIdx < 0 {
		if delta > 0 {
			m.pickerIdx = 0
		} else {
			m.pickerIdx = len(m.palette) - 1
		}
	} else {
		m.pickerIdx = (m.pickerIdx + delta + len(m.palette)) % len(m.palette)
	}

	m.pickerHex = m.palette[m.pickerIdx]
	m.hex.SetValue(strings.TrimPrefix(m.pickerHex, "#"))
	m.emitChange()
}

// syncPickerFromHex keeps the picker holding the expansion of whatever valid
// digits the hex field contains.
func (m *Model) syncPickerFromHex() {
	digits := m.hex.Value()
	if !hexFieldPattern.MatchString(digits) {
		return
	}
	m.pickerHex = "#" + hexcolor.Expand(strings.ToUpper(digits))
	m.pickerIdx = m.paletteIndex(m.pickerHex)
}

// commitOpacity clamps the field and rewrites it so the display always shows
// the effective percentage.
func (m *Model) commitOpacity() {
	clamped := strconv.Itoa(m.opacityPercent())
	if m.opacity.Value() != clamped {
		m.opacity.SetValue(clamped)
		m.emitChange()
	}
}

func (m *Model) emitChange() {
	m.raw = m.Value()
	if m.onChange != nil {
		m.onChange(m.Value())
	}
}

// SetPalette swaps the picker's selectable colors, typically after a theme
// change. The current selection is re-resolved against the new slots.
func (m *Model) SetPalette(palette []string) {
	m.setPalette(palette)
	m.pickerIdx = m.paletteIndex(m.pickerHex)
}

func (m *Model) setPalette(palette []string) {
	m.palette = make([]string, 0, len(palette))
	for _, c := range palette {
		m.palette = append(m.palette, hexcolor.ParseWithAlpha(c).Hex6())
	}
}

func (m Model) paletteIndex(hex6 string) int {
	for i, c := range m.palette {
		if c == hex6 {
			return i
		}
	}
	return -1
}

// OpacityDisplay returns the opacity field text with its unit, for views.
func (m Model) OpacityDisplay() string {
	return fmt.Sprintf("%s%%", m.opacity.Value())
}
