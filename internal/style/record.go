package style

import (
	"strings"

	"github.com/texhue/texhue/internal/hexcolor"
)

// Field addresses one part of a rule in error reporting. The expression
// field is addressed externally as "tex", the name the error surface has
// always used.
type Field string

const (
	FieldTex         Field = "tex"
	FieldColor       Field = "color"
	FieldOccurrences Field = "occurrences"
)

// Record is one styled sub-expression rule: a TeX-like expression fragment,
// a color, and an optional occurrence selector. An empty Occurrences string
// means the rule applies to every occurrence. Records compare by value.
type Record struct {
	Expression  string `yaml:"expression" json:"expression"`
	Color       string `yaml:"color" json:"color" validate:"required,shorthandhex"`
	Occurrences string `yaml:"occurrences,omitempty" json:"occurrences,omitempty" validate:"omitempty,occurrences"`
}

// Normalized returns a copy with trimmed text fields and the color rewritten
// to canonical hex8.
func (r Record) Normalized() Record {
	return Record{
		Expression:  strings.TrimSpace(r.Expression),
		Color:       hexcolor.Normalize(r.Color),
		Occurrences: strings.TrimSpace(r.Occurrences),
	}
}

// CloneRecords returns an independent copy of the given slice. Records hold
// only value fields, so a shallow element copy is a deep copy.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
