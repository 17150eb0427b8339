// Package hexcolor converts between shorthand hex notations, canonical
// 8-digit hex, and normalized float RGBA. All functions are total: malformed
// input falls back to opaque black rather than returning an error.
package hexcolor

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is the in-memory color representation. Channels are floats in [0,1].
// It is never persisted; documents carry hex8 strings.
type RGBA struct {
	R float64
	G float64
	B float64
	A float64
}

// Black is the fallback value for unparseable color strings.
var Black = RGBA{R: 0, G: 0, B: 0, A: 1}

// 1-8 hex digits, optional leading '#'.
var shorthandPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{1,8}$`)

// ValidShorthand reports whether s is an accepted hex color string: 1-8 hex
// digits with an optional leading '#'. ParseWithAlpha accepts anything, but
// callers that need to distinguish real colors from garbage check this
// first.
func ValidShorthand(s string) bool {
	return shorthandPattern.MatchString(s)
}

// Expand widens shorthand hex digits to six: one digit repeats six times,
// two repeat three times, three double each digit, four or more pass through
// unchanged. Hex-digit validity is the caller's concern.
func Expand(digits string) string {
	switch len(digits) {
	case 0:
		return ""
	case 1:
		return strings.Repeat(digits, 6)
	case 2:
		return strings.Repeat(digits, 3)
	case 3:
		var b strings.Builder
		b.Grow(6)
		for _, r := range digits {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String()
	default:
		return digits
	}
}

// ParseWithAlpha decodes a 1-8 digit hex color string, optionally
// #-prefixed, case-insensitive. The first six characters are expanded per
// Expand; an expansion shorter than six digits or an undecodable byte yields
// Black. Alpha comes from characters 7-8 of the cleaned string. A cleaned
// length of exactly seven means a stray trailing character: it is dropped
// and alpha is forced to 1.
func ParseWithAlpha(s string) RGBA {
	cleaned := strings.ToUpper(strings.TrimPrefix(s, "#"))

	head := cleaned
	if len(head) > 6 {
		head = head[:6]
	}
	expanded := Expand(head)
	if len(expanded) < 6 {
		return Black
	}

	r, okR := hexByte(expanded[0:2])
	g, okG := hexByte(expanded[2:4])
	b, okB := hexByte(expanded[4:6])
	if !okR || !okG || !okB {
		return Black
	}

	a := 1.0
	if len(cleaned) >= 8 {
		if v, ok := hexByte(cleaned[6:8]); ok {
			a = v
		}
	}

	return RGBA{R: r, G: g, B: b, A: a}
}

// ToHex8 serializes the given channels as "#RRGGBBAA". Channels are clamped
// to [0,1] before scaling. This is the canonical form for storage and
// comparison.
func ToHex8(r, g, b, a float64) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", channelByte(r), channelByte(g), channelByte(b), channelByte(a))
}

// Hex8 serializes the color as "#RRGGBBAA".
func (c RGBA) Hex8() string {
	return ToHex8(c.R, c.G, c.B, c.A)
}

// Hex6 serializes the color as "#RRGGBB", dropping alpha.
func (c RGBA) Hex6() string {
	return fmt.Sprintf("#%02X%02X%02X", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

// Composite alpha-blends the color over an opaque background. Terminal cells
// cannot carry alpha, so previews flatten against the theme background.
func (c RGBA) Composite(bg RGBA) RGBA {
	src := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
	dst := colorful.Color{R: clamp01(bg.R), G: clamp01(bg.G), B: clamp01(bg.B)}
	out := src.BlendRgb(dst, 1-clamp01(c.A))
	return RGBA{R: out.R, G: out.G, B: out.B, A: 1}
}

// Luminance reports the color's relative luminance, used to pick readable
// label colors over swatches.
func (c RGBA) Luminance() float64 {
	col := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
	_, _, l := col.HSLuv()
	return l
}

// CSSRGBA formats any accepted color string as a CSS functional color,
// e.g. "rgba(32, 32, 32, 0.5)". Preview only.
func CSSRGBA(s string) string {
	c := ParseWithAlpha(s)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", channelByte(c.R), channelByte(c.G), channelByte(c.B), formatAlpha(c.A))
}

// Normalize rewrites any accepted color string into canonical hex8.
// Idempotent: normalizing a normalized value is the identity.
func Normalize(s string) string {
	return ParseWithAlpha(s).Hex8()
}

func hexByte(pair string) (float64, bool) {
	v, err := strconv.ParseUint(pair, 16, 8)
	if err != nil {
		return 0, false
	}
	return float64(v) / 255, true
}

func channelByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func formatAlpha(a float64) string {
	rounded := math.Round(clamp01(a)*1000) / 1000
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
