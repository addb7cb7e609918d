package commands

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/application/inspect"
	"github.com/doeshing/organize-desk/internal/codec"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
	"github.com/doeshing/organize-desk/internal/infrastructure/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand(container *app.Container) *cobra.Command {
	var withInspect bool

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-validate a config every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := watch.NewFileWatcher(args[0], container.Logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			p := helpers.NewPrinter(out)
			p.Println(p.Dim(fmt.Sprintf("Watching %s (Ctrl+C to stop)", watcher.Path())))

			check := func() {
				checkWatchedFile(out, container, watcher.Path(), withInspect)
			}
			check()
			if err := watcher.Run(ctx, check); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withInspect, "inspect", true, "Also report catalog findings")
	return cmd
}

// checkWatchedFile validates path once and prints the outcome.
func checkWatchedFile(out io.Writer, container *app.Container, path string, withInspect bool) {
	p := helpers.NewPrinter(out)
	p.Println(p.Header(time.Now().Format("15:04:05")))

	text, err := container.Files.Read(path)
	if err != nil {
		p.Println(p.Error(err.Error()))
		return
	}
	if err := reportValidation(out, codec.Validate(text)); err != nil || !withInspect {
		return
	}
	cfg, err := codec.Decode(text)
	if err != nil {
		p.Println(p.Error(err.Error()))
		return
	}
	displayDiagnostics(out, cfg, inspect.Inspect(cfg))
}
