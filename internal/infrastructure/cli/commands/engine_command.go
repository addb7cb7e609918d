package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
)

// NewEngineCommand creates the engine command with all subcommands
func NewEngineCommand(container *app.Container) *cobra.Command {
	engineCmd := &cobra.Command{
		Use:   "engine",
		Short: "Query the installed organize engine",
	}

	engineCmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show whether organize can be launched",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.Runner == nil {
					return errors.New(ErrRunServiceUnavailable)
				}
				spinner := helpers.NewSpinner(cmd.ErrOrStderr(), "Probing organize...")
				spinner.Start()
				status := container.Runner.CheckInstalled(cmd.Context())
				spinner.Stop()
				p := helpers.NewPrinter(cmd.OutOrStdout())
				if !status.Installed {
					p.Println(p.Error("organize is not installed: " + status.Error))
					return errors.New("organize unavailable")
				}
				p.Println(p.Success("organize " + status.Version))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print organize's default config path",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.Runner == nil {
					return errors.New(ErrRunServiceUnavailable)
				}
				path, err := container.Runner.DefaultConfigPath(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to query default config path: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(path))
				return nil
			},
		},
		&cobra.Command{
			Use:   "configs",
			Short: "List the configs organize knows about",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.Runner == nil {
					return errors.New(ErrRunServiceUnavailable)
				}
				list, err := container.Runner.ListConfigs(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list configs: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(list))
				return nil
			},
		},
	)

	return engineCmd
}
