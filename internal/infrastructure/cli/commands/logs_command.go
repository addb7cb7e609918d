package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
)

// NewLogsCommand creates the logs command with all subcommands
func NewLogsCommand(container *app.Container) *cobra.Command {
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect the logs of past simulations and runs",
	}

	logsCmd.AddCommand(
		newLogsListCommand(container),
		newLogsShowCommand(container),
		newLogsDeleteCommand(container),
		newLogsClearCommand(container),
		newLogsExportCommand(container),
	)

	return logsCmd
}

// newLogsListCommand creates the 'logs list' subcommand
func newLogsListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent run logs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRunLogs(cmd.OutOrStdout(), container, limit, time.Now())
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultLogListLimit, "Max entries to show (0 for all)")
	return cmd
}

// newLogsShowCommand creates the 'logs show' subcommand
func newLogsShowCommand(container *app.Container) *cobra.Command {
	var withConfig bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the output of a run log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.RunLogs == nil {
				return errors.New(ErrRunLogStoreUnavailable)
			}
			log, err := container.RunLogs.Get(args[0])
			if err != nil {
				return fmt.Errorf("failed to retrieve run log %s: %w", args[0], err)
			}
			displayRunLog(cmd.OutOrStdout(), log, withConfig)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withConfig, "config", false, "Also print the config that was run")
	return cmd
}

// newLogsDeleteCommand creates the 'logs delete' subcommand
func newLogsDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a run log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.RunLogs == nil {
				return errors.New(ErrRunLogStoreUnavailable)
			}
			if err := container.RunLogs.Delete(args[0]); err != nil {
				return fmt.Errorf("failed to delete run log %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

// newLogsClearCommand creates the 'logs clear' subcommand
func newLogsClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all run logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.RunLogs == nil {
				return errors.New(ErrRunLogStoreUnavailable)
			}
			if err := container.RunLogs.Clear(); err != nil {
				return fmt.Errorf("failed to clear run logs: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Run logs cleared.")
			return nil
		},
	}
}

// newLogsExportCommand creates the 'logs export' subcommand
func newLogsExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export run logs to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.RunLogs == nil {
				return errors.New(ErrRunLogStoreUnavailable)
			}
			if err := container.RunLogs.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export run logs to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported run logs to %s\n", args[0])
			return nil
		},
	}
}

// listRunLogs prints a table of run logs with relative times.
func listRunLogs(out io.Writer, container *app.Container, limit int, now time.Time) error {
	store := container.RunLogs
	if store == nil {
		return errors.New(ErrRunLogStoreUnavailable)
	}

	logs, err := store.List(limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve run logs: %w", err)
	}
	if len(logs) == 0 {
		fmt.Fprintln(out, MsgNoRunLogs)
		return nil
	}

	p := helpers.NewPrinter(out)
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		status := p.Success("ok")
		if !l.Success {
			status = p.Error("failed")
		}
		rows = append(rows, []string{
			l.ID,
			humanize.RelTime(l.Timestamp, now, "ago", "from now"),
			string(l.Command),
			l.ConfigName,
			status,
			strconv.Itoa(l.ExitCode),
			formatDuration(l.DurationMS),
		})
	}
	fmt.Fprint(out, helpers.FormatTable([]string{"ID", "WHEN", "VERB", "CONFIG", "STATUS", "EXIT", "DURATION"}, rows))
	return nil
}

// displayRunLog prints one run log with its output.
func displayRunLog(out io.Writer, log domain.RunLog, withConfig bool) {
	p := helpers.NewPrinter(out)
	p.Println(p.Header(fmt.Sprintf("%s %s", log.Command, log.ConfigName)))
	p.Printf("ID:       %s\n", log.ID)
	p.Printf("Time:     %s (%s)\n", log.Timestamp.Local().Format(domain.TimestampFormat), humanize.Time(log.Timestamp))
	p.Printf("Exit:     %d\n", log.ExitCode)
	p.Printf("Duration: %s\n", formatDuration(log.DurationMS))
	if log.Success {
		p.Printf("Status:   %s\n", p.Success("success"))
	} else {
		p.Printf("Status:   %s\n", p.Error("failed"))
	}

	p.Println()
	p.Println(p.Header("Output"))
	if len(log.Output) == 0 {
		p.Println(p.Dim("(no output)"))
	}
	for _, chunk := range log.Output {
		if strings.HasPrefix(chunk, domain.ErrorPrefix) {
			chunk = p.Error(chunk)
		}
		fmt.Fprint(out, chunk)
		if !strings.HasSuffix(chunk, "\n") {
			fmt.Fprintln(out)
		}
	}

	if withConfig {
		p.Println()
		p.Println(p.Header("Config"))
		fmt.Fprint(out, log.ConfigContent)
	}
}

func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}
