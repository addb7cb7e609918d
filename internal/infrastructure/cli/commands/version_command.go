package commands

import (
	"context"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
	"github.com/doeshing/organize-desk/internal/version"
)

const unknownBuildField = "unknown"

// NewVersionCommand creates the version command. Unless --short is given it
// also reports the organize engine the editor would launch.
func NewVersionCommand(container *app.Container) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show organize-desk and organize engine versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if short {
				helpers.NewPrinter(out).Println(version.Version)
				return nil
			}
			return displayVersionInformation(cmd.Context(), out, cmd.ErrOrStderr(), container)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the organize-desk version")
	return cmd
}

type versionField struct {
	label string
	value string
}

func buildFields() []versionField {
	return []versionField{
		{"Version", version.Version},
		{"Commit", orUnknown(version.Commit)},
		{"Built", orUnknown(version.BuildDate)},
		{"Go", runtime.Version()},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
	}
}

func displayVersionInformation(ctx context.Context, out, errOut io.Writer, container *app.Container) error {
	p := helpers.NewPrinter(out)
	p.Println(p.Header("organize-desk"))
	for _, f := range buildFields() {
		p.Printf("  %-9s %s\n", f.label+":", f.value)
	}

	if container == nil || container.Runner == nil {
		return nil
	}
	spinner := helpers.NewSpinner(errOut, "Probing organize...")
	spinner.Start()
	status := container.Runner.CheckInstalled(ctx)
	spinner.Stop()

	p.Println(p.Header("organize engine"))
	if !status.Installed {
		p.Printf("  %-9s %s\n", "Status:", p.Warn("not installed"))
		if status.Error != "" {
			p.Printf("  %-9s %s\n", "Error:", p.Dim(status.Error))
		}
		return nil
	}
	p.Printf("  %-9s %s\n", "Version:", p.Success(orUnknown(status.Version)))
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return unknownBuildField
	}
	return s
}
