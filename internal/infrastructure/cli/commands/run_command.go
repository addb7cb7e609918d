package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/application/run"
	"github.com/doeshing/organize-desk/internal/codec"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
)

type runFlags struct {
	workingDir string
	tags       string
	skipTags   string
	format     string
	yes        bool
}

// NewSimCommand creates the sim command
func NewSimCommand(container *app.Container) *cobra.Command {
	return newExecuteCommand(container, domain.VerbSim, "Simulate a config without touching any file")
}

// NewRunCommand creates the run command
func NewRunCommand(container *app.Container) *cobra.Command {
	return newExecuteCommand(container, domain.VerbRun, "Run a config and apply its actions")
}

func newExecuteCommand(container *app.Container, verb domain.Verb, short string) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   string(verb) + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeConfig(cmd, container, verb, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.workingDir, "working-dir", "", "Working directory for relative paths (default: home)")
	cmd.Flags().StringVar(&flags.tags, "tags", "", "Only run rules with these tags (comma separated)")
	cmd.Flags().StringVar(&flags.skipTags, "skip-tags", "", "Skip rules with these tags (comma separated)")
	cmd.Flags().StringVar(&flags.format, "format", "", "organize output format (default|jsonl|errorsonly)")
	if verb == domain.VerbRun {
		cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Do not ask before running destructive actions")
	}
	return cmd
}

func executeConfig(cmd *cobra.Command, container *app.Container, verb domain.Verb, path string, flags runFlags) error {
	if container.RunService == nil {
		return errors.New(ErrRunServiceUnavailable)
	}
	text, err := container.Files.Read(path)
	if err != nil {
		return err
	}
	if result := codec.Validate(text); !result.Valid {
		_ = reportValidation(cmd.ErrOrStderr(), result)
		return fmt.Errorf("%s is not a valid config", path)
	}

	req := run.Request{
		Verb:       verb,
		ConfigText: text,
		ConfigName: filepath.Base(path),
		Options: domain.RunOptions{
			WorkingDir: flags.workingDir,
			Tags:       flags.tags,
			SkipTags:   flags.skipTags,
			Format:     flags.format,
		},
		Confirmed: flags.yes,
	}

	sink := helpers.NewStreamWriter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	log, err := container.RunService.Execute(cmd.Context(), req, sink)
	if errors.Is(err, run.ErrConfirmationRequired) {
		if !confirmRun(cmd, run.DangerousIn(text)) {
			return errors.New(ErrConfirmationDeclined)
		}
		req.Confirmed = true
		log, err = container.RunService.Execute(cmd.Context(), req, sink)
	}
	if err != nil {
		return err
	}

	p := helpers.NewPrinter(cmd.ErrOrStderr())
	summary := fmt.Sprintf("%s finished in %d ms (exit %d, log %s)", verb, log.DurationMS, log.ExitCode, log.ID)
	if log.Success {
		p.Println(p.Success(summary))
		return nil
	}
	p.Println(p.Error(summary))
	return fmt.Errorf("organize %s failed with exit code %d", verb, log.ExitCode)
}

// confirmRun asks on an interactive terminal; elsewhere it declines.
func confirmRun(cmd *cobra.Command, actions []string) bool {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); !ok || !helpers.IsTerminal(f) {
		fmt.Fprintf(cmd.ErrOrStderr(), "config uses %s; pass --yes to run it non-interactively\n", strings.Join(actions, ", "))
		return false
	}
	question := fmt.Sprintf("This config uses %s. Run it for real?", strings.Join(actions, ", "))
	return helpers.PromptForConfirmation(cmd.ErrOrStderr(), bufio.NewReader(in), question)
}
