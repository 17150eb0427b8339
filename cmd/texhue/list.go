package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/texhue/texhue/internal/hexcolor"
	"github.com/texhue/texhue/internal/style"
	"github.com/texhue/texhue/internal/theme"
)

type listOptions struct {
	jsonOutput bool
	cssColors  bool
}

func newListCmd(env *appEnv) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the styles in the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, env, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&opts.cssColors, "css", false, "Show colors as CSS rgba() values")

	return cmd
}

func runList(cmd *cobra.Command, env *appEnv, opts *listOptions) error {
	doc, err := style.LoadOrInit(env.cfg.Document)
	if err != nil {
		return newCommandError("list", fmt.Sprintf("loading %s", env.cfg.Document), err, "Fix the styles document and try again.")
	}

	if opts.jsonOutput {
		data, err := json.MarshalIndent(doc.Styles, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(doc.Styles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No styles defined. Run 'texhue add' or open the editor.")
		return nil
	}

	tty := isTTY()
	th := env.themes.Theme()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tEXPRESSION\tCOLOR\tOCCURRENCES")
	for i, rec := range doc.Styles {
		color := rec.Color
		if opts.cssColors {
			color = hexcolor.CSSRGBA(rec.Color)
		}
		if tty {
			swatch := lipgloss.NewStyle().Background(theme.SwatchColor(th, rec.Color)).Render("  ")
			color = swatch + " " + color
		}

		expr := rec.Expression
		if tty {
			expr = highlightExpression(expr)
		}

		occ := rec.Occurrences
		if occ == "" {
			occ = "all"
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, expr, color, occ)
	}
	return w.Flush()
}

// highlightExpression renders a TeX fragment with syntax colors for
// terminal display. Failures fall back to the plain string.
func highlightExpression(expr string) string {
	lexer := lexers.Get("latex")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	chromaStyle := chromastyles.Get("monokai")
	if chromaStyle == nil {
		chromaStyle = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, expr)
	if err != nil {
		return expr
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, chromaStyle, iterator); err != nil {
		return expr
	}
	return buf.String()
}

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
