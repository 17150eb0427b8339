// Package lint decides when rule fields are in error. The row list renders
// whatever problems it is handed and never derives them itself; this package
// is the source.
package lint

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/texhue/texhue/internal/hexcolor"
	"github.com/texhue/texhue/internal/style"
)

// Problem is one field-level complaint about a rule.
type Problem struct {
	Field   style.Field
	Message string
}

// Check inspects a single rule and returns its problems, at most one per
// field. A clean rule yields nil.
func Check(record style.Record) []Problem {
	var problems []Problem

	if msg := checkExpression(record.Expression); msg != "" {
		problems = append(problems, Problem{Field: style.FieldTex, Message: msg})
	}
	if msg := checkColor(record.Color); msg != "" {
		problems = append(problems, Problem{Field: style.FieldColor, Message: msg})
	}
	if msg := checkOccurrences(record.Occurrences); msg != "" {
		problems = append(problems, Problem{Field: style.FieldOccurrences, Message: msg})
	}

	return problems
}

// CheckAll lints every rule, keyed by row index. Rows without problems are
// absent from the result.
func CheckAll(styles []style.Record) map[int][]Problem {
	result := make(map[int][]Problem)
	for i, record := range styles {
		if problems := Check(record); len(problems) > 0 {
			result[i] = problems
		}
	}
	return result
}

func checkExpression(expr string) string {
	depth := 0
	for _, r := range expr {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return "unbalanced braces"
			}
		}
		if unicode.IsControl(r) && r != '\t' {
			return "control characters are not allowed"
		}
	}
	if depth != 0 {
		return "unbalanced braces"
	}
	return ""
}

func checkColor(color string) string {
	if !hexcolor.ValidShorthand(color) {
		return "expected 1-8 hex digits, optionally #-prefixed"
	}
	return ""
}

func checkOccurrences(selector string) string {
	if !style.ValidOccurrences(selector) {
		return "expected ordinals or ranges, e.g. 1,3-5"
	}

	for _, part := range strings.Split(selector, ",") {
		if part == "" {
			continue
		}
		lo, hi, ok := parseRange(part)
		if !ok {
			continue
		}
		if lo == 0 {
			return "occurrence ordinals start at 1"
		}
		if hi < lo {
			return fmt.Sprintf("range %s is reversed", part)
		}
	}

	return ""
}

func parseRange(part string) (lo, hi int, ok bool) {
	bounds := strings.SplitN(part, "-", 2)
	lo, err := strconv.Atoi(bounds[0])
	if err != nil {
		return 0, 0, false
	}
	if len(bounds) == 1 {
		return lo, lo, true
	}
	hi, err = strconv.Atoi(bounds[1])
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}
