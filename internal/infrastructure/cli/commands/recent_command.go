package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
)

// NewRecentCommand creates the recent command with all subcommands
func NewRecentCommand(container *app.Container) *cobra.Command {
	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage the recently opened config files",
	}

	recentCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent files, most recent first",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.SettingsService == nil {
					return errors.New(ErrSettingsUnavailable)
				}
				files, err := container.SettingsService.RecentFiles(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(files) == 0 {
					fmt.Fprintln(out, MsgNoRecentFiles)
					return nil
				}
				p := helpers.NewPrinter(out)
				rows := make([][]string, 0, len(files))
				for i, f := range files {
					state := ""
					if _, err := os.Stat(f); err != nil {
						state = p.Dim("missing")
					}
					rows = append(rows, []string{strconv.Itoa(i + 1), f, state})
				}
				fmt.Fprint(out, helpers.FormatTable([]string{"#", "PATH", ""}, rows))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget all recent files",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.SettingsService == nil {
					return errors.New(ErrSettingsUnavailable)
				}
				if err := container.SettingsService.ClearRecentFiles(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Recent files cleared.")
				return nil
			},
		},
	)

	return recentCmd
}
