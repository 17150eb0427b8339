package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texhue/texhue/internal/lint"
	"github.com/texhue/texhue/internal/style"
	"github.com/texhue/texhue/internal/theme"
)

type addOptions struct {
	color       string
	occurrences string
}

func newAddCmd(env *appEnv) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <expression>",
		Short: "Append a style rule to the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, env, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.color, "color", "C", "", "Color as 1-8 hex digits (defaults to the next theme color)")
	cmd.Flags().StringVarP(&opts.occurrences, "occurrences", "o", "", "Occurrence selector, e.g. 1,3-5 (default: all)")

	return cmd
}

func runAdd(cmd *cobra.Command, env *appEnv, expression string, opts *addOptions) error {
	doc, err := style.LoadOrInit(env.cfg.Document)
	if err != nil {
		return newCommandError("add", fmt.Sprintf("loading %s", env.cfg.Document), err, "Fix the styles document and try again.")
	}

	color := opts.color
	if color == "" {
		color = theme.DefaultColor(env.themes.Theme(), len(doc.Styles))
	}

	rec := style.Record{
		Expression:  strings.TrimSpace(expression),
		Color:       color,
		Occurrences: strings.TrimSpace(opts.occurrences),
	}

	if problems := lint.Check(rec); len(problems) > 0 {
		lines := make([]string, 0, len(problems))
		for _, p := range problems {
			lines = append(lines, fmt.Sprintf("%s: %s", p.Field, p.Message))
		}
		return newCommandError("add", "validating the new style", fmt.Errorf("%s", strings.Join(lines, "; ")), "Adjust the flagged fields and retry.")
	}

	rec = rec.Normalized()
	doc.Styles = append(doc.Styles, rec)

	if err := style.SaveDocument(env.cfg.Document, doc); err != nil {
		return newCommandError("add", fmt.Sprintf("writing %s", env.cfg.Document), err, "Check permissions on the document directory.")
	}

	env.log.WithFields(map[string]any{"index": len(doc.Styles) - 1, "color": rec.Color}).Debug("style added")
	fmt.Fprintf(cmd.OutOrStdout(), "Added style %d: %s (%s)\n", len(doc.Styles), rec.Expression, rec.Color)
	return nil
}
