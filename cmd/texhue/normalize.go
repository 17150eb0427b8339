package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/texhue/texhue/internal/style"
	"github.com/texhue/texhue/pkg/diff"
)

type normalizeOptions struct {
	check bool
}

func newNormalizeCmd(env *appEnv) *cobra.Command {
	opts := &normalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite every color to canonical hex8 and trim rule text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, env, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "Report what would change without writing")

	return cmd
}

func runNormalize(cmd *cobra.Command, env *appEnv, opts *normalizeOptions) error {
	doc, err := style.ParseDocument(env.cfg.Document)
	if err != nil {
		return newCommandError("normalize", fmt.Sprintf("loading %s", env.cfg.Document), err, "Fix the styles document and try again.")
	}

	before, err := style.MarshalDocument(doc)
	if err != nil {
		return newCommandError("normalize", "rendering the current document", err, "This is a bug; please report it.")
	}

	doc.Normalize()

	after, err := style.MarshalDocument(doc)
	if err != nil {
		return newCommandError("normalize", "rendering the normalized document", err, "This is a bug; please report it.")
	}

	unified := diff.Unified(before, after, env.cfg.Document, "normalized")
	if unified == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Already normalized.")
		return nil
	}

	if opts.check {
		fmt.Fprint(cmd.OutOrStdout(), unified)
		return newCommandError("normalize", fmt.Sprintf("checking %s", env.cfg.Document),
			fmt.Errorf("document is not normalized"),
			"Run 'texhue normalize' without --check to rewrite it.")
	}

	if err := style.SaveDocument(env.cfg.Document, doc); err != nil {
		return newCommandError("normalize", fmt.Sprintf("writing %s", env.cfg.Document), err, "Check permissions on the document directory.")
	}

	env.log.WithFields(map[string]any{"styles": len(doc.Styles)}).Debug("document normalized")
	fmt.Fprintf(cmd.OutOrStdout(), "Normalized %d styles.\n", len(doc.Styles))
	return nil
}
