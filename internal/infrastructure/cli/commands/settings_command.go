package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/application/settings"
)

const (
	envKeyEditor  = "EDITOR"
	defaultEditor = "vi"
)

// NewSettingsCommand creates the settings command with all subcommands
func NewSettingsCommand(container *app.Container) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change editor settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	settingsCmd.AddCommand(
		newSettingsShowCommand(container),
		newSettingsGetCommand(container),
		newSettingsSetCommand(container),
		newSettingsEditCommand(container),
		newSettingsResetCommand(container),
		newSettingsDiffCommand(container),
		newSettingsPathCommand(container),
	)

	return settingsCmd
}

// newSettingsShowCommand creates the 'settings show' subcommand
func newSettingsShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show all settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newSettingsGetCommand creates the 'settings get' subcommand
func newSettingsGetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Get a single setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: settings.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.SettingsService == nil {
				return errors.New(ErrSettingsUnavailable)
			}
			value, err := container.SettingsService.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to marshal value: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

// newSettingsSetCommand creates the 'settings set' subcommand
func newSettingsSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting (value accepts YAML syntax)",
		Example: "  organize-desk settings set font_size 16\n" +
			"  organize-desk settings set python_path /usr/local/bin/python3.12",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.SettingsService == nil {
				return errors.New(ErrSettingsUnavailable)
			}
			key := args[0]
			value := strings.Join(args[1:], " ")
			if _, err := container.SettingsService.Set(cmd.Context(), key, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", key)
			return nil
		},
	}
}

// newSettingsEditCommand creates the 'settings edit' subcommand
func newSettingsEditCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the settings file in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.SettingsService == nil {
				return errors.New(ErrSettingsUnavailable)
			}
			if err := editSettingsInEditor(container); err != nil {
				return err
			}
			if _, err := container.SettingsService.Load(cmd.Context()); err != nil {
				return fmt.Errorf("settings file is no longer valid: %w", err)
			}
			return nil
		},
	}
}

// newSettingsResetCommand creates the 'settings reset' subcommand
func newSettingsResetCommand(container *app.Container) *cobra.Command {
	var clearRecent bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset settings to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.SettingsService == nil {
				return errors.New(ErrSettingsUnavailable)
			}
			defaults, err := container.SettingsService.Reset(cmd.Context(), clearRecent)
			if err != nil {
				return fmt.Errorf("failed to reset settings: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Settings reset at %s\n", container.SettingsStore.Path())
			data, _ := yaml.Marshal(defaults)
			fmt.Fprint(out, string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearRecent, "clear-recent", false, "Also clear the recent file list")
	return cmd
}

// newSettingsDiffCommand creates the 'settings diff' subcommand
func newSettingsDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.SettingsService == nil {
				return errors.New(ErrSettingsUnavailable)
			}
			diff, err := container.SettingsService.Diff(cmd.Context())
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoDifferencesFromDefault)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), diff)
			return nil
		},
	}
}

// newSettingsPathCommand creates the 'settings path' subcommand
func newSettingsPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.SettingsStore.Path())
			return nil
		},
	}
}

// showSettings displays all settings in YAML format
func showSettings(ctx context.Context, out io.Writer, container *app.Container) error {
	if container.SettingsService == nil {
		return errors.New(ErrSettingsUnavailable)
	}
	current, err := container.SettingsService.Load(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

// editSettingsInEditor opens the settings file in the user's editor
func editSettingsInEditor(container *app.Container) error {
	editor := getEditorCommand()
	cmd := exec.Command(editor, container.SettingsStore.Path())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor, err)
	}
	return nil
}

// getEditorCommand retrieves the editor command from environment or returns default
func getEditorCommand() string {
	if editor := os.Getenv(envKeyEditor); editor != "" {
		return editor
	}
	return defaultEditor
}
