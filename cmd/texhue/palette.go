package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/texhue/texhue/internal/config"
	"github.com/texhue/texhue/internal/hexcolor"
	"github.com/texhue/texhue/internal/palettepack"
	"github.com/texhue/texhue/internal/theme"
)

func newPaletteCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Manage shared palette packs",
	}

	cmd.AddCommand(newPaletteSyncCmd(env))
	cmd.AddCommand(newPaletteListCmd(env))
	cmd.AddCommand(newPaletteShowCmd(env))

	return cmd
}

type paletteSyncOptions struct {
	repo   string
	branch string
}

func newPaletteSyncCmd(env *appEnv) *cobra.Command {
	opts := &paletteSyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Clone the configured palette pack if it is not checked out yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaletteSync(cmd, env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", "", "Pack repository URL (defaults to palette_repo from the config)")
	cmd.Flags().StringVar(&opts.branch, "branch", "", "Branch to clone (default: the remote HEAD)")

	return cmd
}

func runPaletteSync(cmd *cobra.Command, env *appEnv, opts *paletteSyncOptions) error {
	repo := opts.repo
	if repo == "" {
		repo = env.cfg.PaletteRepo
	}
	if repo == "" {
		return newCommandError("sync palette pack", "resolving the pack repository",
			fmt.Errorf("no repository configured"),
			"Pass --repo or set palette_repo in the config file.")
	}

	syncer := palettepack.NewSyncer(config.PacksDir(), env.log)
	status, err := syncer.Sync(cmd.Context(), repo, opts.branch)
	if err != nil {
		return newCommandError("sync palette pack", fmt.Sprintf("syncing %s", repo), err,
			"Check the URL, or remove the drifted checkout and sync again.")
	}

	switch status {
	case palettepack.StatusSynced:
		fmt.Fprintf(cmd.OutOrStdout(), "Pack %s is synced at %s\n", palettepack.PackName(repo), syncer.PackDir(repo))
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Pack %s: %s\n", palettepack.PackName(repo), status)
	}
	return nil
}

func newPaletteListCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List palettes available in synced packs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaletteList(cmd, env)
		},
	}
}

func runPaletteList(cmd *cobra.Command, env *appEnv) error {
	syncer := palettepack.NewSyncer(config.PacksDir(), env.log)

	packs, err := syncer.Packs()
	if err != nil {
		return newCommandError("list palettes", "reading the packs directory", err,
			"Check permissions on the config directory.")
	}
	if len(packs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No palette packs synced. Run 'texhue palette sync' first.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PACK\tPALETTE")
	for _, pack := range packs {
		palettes, err := syncer.ListPalettes(pack)
		if err != nil {
			return newCommandError("list palettes", fmt.Sprintf("reading pack %s", pack), err,
				"Re-sync the pack or remove its checkout.")
		}
		if len(palettes) == 0 {
			fmt.Fprintf(w, "%s\t(no palettes)\n", pack)
			continue
		}
		for _, name := range palettes {
			fmt.Fprintf(w, "%s\t%s\n", pack, name)
		}
	}
	return w.Flush()
}

func newPaletteShowCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pack> <palette>",
		Short: "Print a palette's colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaletteShow(cmd, env, args[0], args[1])
		},
	}
}

func runPaletteShow(cmd *cobra.Command, env *appEnv, pack, name string) error {
	syncer := palettepack.NewSyncer(config.PacksDir(), env.log)

	palette, err := syncer.LoadPalette(pack, name)
	if err != nil {
		return newCommandError("show palette", fmt.Sprintf("loading %s/%s", pack, name), err,
			"Run 'texhue palette list' to see what is available.")
	}

	th := env.themes.Theme()
	tty := isTTY()

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d colors)\n", palette.Name, len(palette.Colors))
	for _, color := range palette.Colors {
		if tty {
			label := lipgloss.NewStyle().
				Background(theme.SwatchColor(th, color)).
				Foreground(theme.LabelColor(hexcolor.ParseWithAlpha(color))).
				Render(" " + color + " ")
			fmt.Fprintln(cmd.OutOrStdout(), label)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), color)
	}
	return nil
}
