package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/application/inspect"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
)

// NewInspectCommand creates the inspect command
func NewInspectCommand(container *app.Container) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Check filters, actions and location globs against the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd.Context(), container, args[0])
			if err != nil {
				return err
			}
			cfg := session.Config()
			diags := inspect.Inspect(cfg)
			displayDiagnostics(cmd.OutOrStdout(), cfg, diags)
			if inspect.HasErrors(diags) || (strict && len(diags) > 0) {
				return fmt.Errorf("%d problem(s) found", len(diags))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings too")
	return cmd
}

func displayDiagnostics(out io.Writer, cfg domain.Config, diags []domain.Diagnostic) {
	p := helpers.NewPrinter(out)
	if len(diags) == 0 {
		p.Println(p.Success(MsgNoFindings))
		return
	}
	for _, d := range diags {
		name := ""
		if d.Rule < len(cfg.Rules) {
			name = ruleName(cfg.Rules[d.Rule])
		}
		p.Printf("%-7s rule %d (%s) %s: %s\n", p.Severity(d.Severity), d.Rule+1, name, d.Path, d.Message)
	}
}
