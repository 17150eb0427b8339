package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/texhue/texhue/internal/config"
	"github.com/texhue/texhue/internal/logger"
	"github.com/texhue/texhue/internal/theme"
)

type rootFlags struct {
	configPath string
	document   string
	themeName  string
	verbose    bool
}

// appEnv bundles the services commands share: resolved config, the active
// theme, and a logger.
type appEnv struct {
	cfg    config.Config
	themes *theme.Manager
	log    *logger.Logger
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	env := &appEnv{}

	cmd := &cobra.Command{
		Use:           "texhue",
		Short:         "texhue edits styled TeX sub-expressions",
		Long:          "texhue maintains a document of styled sub-expressions: a TeX fragment,\na color with alpha, and an optional occurrence selector per rule.\nRun without arguments to open the interactive editor.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.init(flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand launches the editor
			return runEdit(env, &editOptions{})
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to config.yaml")
	cmd.PersistentFlags().StringVar(&flags.document, "document", "", "Path to the styles document")
	cmd.PersistentFlags().StringVar(&flags.themeName, "theme", "", "Theme to use for this run")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newEditCmd(env))
	cmd.AddCommand(newListCmd(env))
	cmd.AddCommand(newAddCmd(env))
	cmd.AddCommand(newRemoveCmd(env))
	cmd.AddCommand(newNormalizeCmd(env))
	cmd.AddCommand(newPaletteCmd(env))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// init resolves config, applies flag overrides, and builds the logger.
func (e *appEnv) init(flags *rootFlags) error {
	path := flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if flags.document != "" {
		cfg.Document = flags.document
	}
	if flags.themeName != "" {
		if _, ok := theme.BuiltinThemes[theme.Name(flags.themeName)]; !ok {
			return fmt.Errorf("unknown theme %q (themes: %s)", flags.themeName, themeNames())
		}
		cfg.Theme = flags.themeName
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: true})
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.themes = theme.NewManager(theme.Get(theme.Name(cfg.Theme)))
	e.log = log
	return nil
}

func themeNames() string {
	names := theme.Names()
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += string(n)
	}
	return out
}

// commandError attaches context and a suggestion to a failed command.
type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
