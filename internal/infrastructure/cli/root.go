package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	return newRootCommand(container), nil
}

func newRootCommand(container *app.Container) *cobra.Command {
	root := &cobra.Command{
		Use:   "organize-desk",
		Short: "Edit, check and run organize configs",
		Long: "organize-desk edits organize-tool YAML configs rule by rule, checks them against\n" +
			"the filter and action catalog, and runs them through the installed organize engine.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		commands.NewNewCommand(container),
		commands.NewValidateCommand(container),
		commands.NewFmtCommand(container),
		commands.NewShowCommand(container),
		commands.NewSimCommand(container),
		commands.NewRunCommand(container),
		commands.NewRulesCommand(container),
		commands.NewFiltersCommand(container),
		commands.NewActionsCommand(container),
		commands.NewCatalogCommand(),
		commands.NewInspectCommand(container),
		commands.NewLogsCommand(container),
		commands.NewSettingsCommand(container),
		commands.NewRecentCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewEngineCommand(container),
		commands.NewWatchCommand(container),
		commands.NewVersionCommand(container),
	)
	return root
}
