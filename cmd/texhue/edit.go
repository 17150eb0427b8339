package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/texhue/texhue/internal/config"
	"github.com/texhue/texhue/internal/logger"
	"github.com/texhue/texhue/internal/palettepack"
	"github.com/texhue/texhue/internal/store"
	"github.com/texhue/texhue/internal/tui/editor"
)

type editOptions struct {
	palette string
}

func newEditCmd(env *appEnv) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive style editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.palette, "palette", "", "Highlight palette from a synced pack, as pack/name")

	return cmd
}

func runEdit(env *appEnv, opts *editOptions) error {
	if !isTTY() {
		return newCommandError("edit", "starting the editor",
			fmt.Errorf("stdout is not a terminal"),
			"Run texhue in an interactive terminal, or use 'texhue list' for scripted output.")
	}

	// The TUI owns the terminal, so the editor session logs to a file.
	log, err := logger.NewFileLogger(env.cfg.LogFile, env.cfg.LogLevel)
	if err != nil {
		return newCommandError("edit", "opening the log file", err, "Check permissions on the texhue config directory.")
	}
	defer log.Close()

	st, err := store.NewStore(env.cfg.Document, env.cfg.Theme)
	if err != nil {
		return newCommandError("edit", fmt.Sprintf("loading %s", env.cfg.Document), err, "Fix or remove the styles document and try again.")
	}

	model := editor.NewModel(st, log)

	if opts.palette != "" {
		pack, name, ok := strings.Cut(opts.palette, "/")
		if !ok {
			return newCommandError("edit", fmt.Sprintf("parsing palette %q", opts.palette),
				fmt.Errorf("expected pack/name"),
				"Run 'texhue palette list' to see what is available.")
		}
		p, err := palettepack.NewSyncer(config.PacksDir(), log).LoadPalette(pack, name)
		if err != nil {
			return newCommandError("edit", fmt.Sprintf("loading palette %s", opts.palette), err,
				"Run 'texhue palette list' to see what is available.")
		}
		model = model.WithPalette(p.Colors)
	}

	log.WithFields(map[string]any{"document": env.cfg.Document, "styles": len(st.Styles())}).Info("editor starting")

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor terminated abnormally: %w", err)
	}
	return nil
}
