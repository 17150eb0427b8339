package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/texhue/texhue/internal/style"
)

func newRemoveCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Delete a style rule by its 1-based position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, env, args[0])
		},
	}
}

func runRemove(cmd *cobra.Command, env *appEnv, arg string) error {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return newCommandError("remove", fmt.Sprintf("parsing index %q", arg), err, "Pass the position shown by 'texhue list'.")
	}

	doc, err := style.ParseDocument(env.cfg.Document)
	if err != nil {
		return newCommandError("remove", fmt.Sprintf("loading %s", env.cfg.Document), err, "Fix the styles document and try again.")
	}

	if index < 1 || index > len(doc.Styles) {
		return newCommandError("remove", fmt.Sprintf("locating style %d", index),
			fmt.Errorf("document has %d styles", len(doc.Styles)),
			"Pass the position shown by 'texhue list'.")
	}

	removed := doc.Styles[index-1]
	doc.Styles = append(doc.Styles[:index-1], doc.Styles[index:]...)

	if err := style.SaveDocument(env.cfg.Document, doc); err != nil {
		return newCommandError("remove", fmt.Sprintf("writing %s", env.cfg.Document), err, "Check permissions on the document directory.")
	}

	env.log.WithFields(map[string]any{"index": index, "expression": removed.Expression}).Debug("style removed")
	fmt.Fprintf(cmd.OutOrStdout(), "Removed style %d: %s\n", index, removed.Expression)
	return nil
}
