package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/application/document"
	"github.com/doeshing/organize-desk/internal/codec"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
	"github.com/doeshing/organize-desk/internal/pkg/filesystem"
)

// NewNewCommand creates the new command
func NewNewCommand(container *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create a config from the starter template",
		Long:  "Writes the starter config to FILE, or prints it when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), codec.DefaultDocument())
				return nil
			}
			return createDocument(cmd, container, args[0], force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func createDocument(cmd *cobra.Command, container *app.Container, path string, force bool) error {
	if _, err := os.Stat(filesystem.ExpandPath(path)); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	session := container.NewSession()
	if err := session.SetViewMode(document.ModeYAML); err != nil {
		return err
	}
	if err := session.SetText(codec.DefaultDocument()); err != nil {
		return err
	}
	if err := session.SaveAs(cmd.Context(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

// NewValidateCommand creates the validate command
func NewValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a config file for structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := container.Files.Read(args[0])
			if err != nil {
				return err
			}
			return reportValidation(cmd.OutOrStdout(), codec.Validate(text))
		},
	}
}

// reportValidation prints the result and returns an error when invalid.
func reportValidation(out io.Writer, result domain.ValidationResult) error {
	p := helpers.NewPrinter(out)
	if result.Valid {
		p.Println(p.Success(MsgConfigurationValid))
		return nil
	}
	for _, msg := range result.Errors {
		p.Println(p.Error("✗ ") + msg)
	}
	return fmt.Errorf("config has %d error(s)", len(result.Errors))
}

// NewFmtCommand creates the fmt command
func NewFmtCommand(container *app.Container) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a config in canonical form",
		Long: strings.TrimSpace(`
Decodes the config and encodes it again: shorthand forms are collapsed,
default values dropped and keys ordered canonically. Comments are not kept.
Prints the result unless --write is given.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd.Context(), container, args[0])
			if err != nil {
				return err
			}
			if write {
				if err := session.Save(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Formatted %s\n", args[0])
				return nil
			}
			text, err := session.Text()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}

// NewShowCommand creates the show command
func NewShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Summarize the rules of a config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd.Context(), container, args[0])
			if err != nil {
				return err
			}
			displayRules(cmd.OutOrStdout(), session.Config())
			return nil
		},
	}
}

func displayRules(out io.Writer, cfg domain.Config) {
	p := helpers.NewPrinter(out)
	if len(cfg.Rules) == 0 {
		p.Println(p.Dim("No rules."))
		return
	}
	for i, rule := range cfg.Rules {
		if i > 0 {
			p.Println()
		}
		title := fmt.Sprintf("%d. %s", i+1, ruleName(rule))
		if !rule.Enabled {
			title += " " + p.Dim("(disabled)")
		}
		p.Println(p.Header(title))
		p.Printf("   targets: %s  filter_mode: %s  subfolders: %t\n", rule.EffectiveTargets(), rule.EffectiveFilterMode(), rule.Subfolders)
		for _, loc := range rule.Locations {
			p.Printf("   location: %s\n", loc.Path)
		}
		for j, f := range rule.Filters {
			p.Printf("   filter %d: %s\n", j+1, describeEntry(f.Type, f.Negated, f.Config))
		}
		for j, a := range rule.Actions {
			p.Printf("   action %d: %s\n", j+1, describeEntry(a.Type, false, a.Config))
		}
		if len(rule.Tags) > 0 {
			p.Printf("   tags: %s\n", strings.Join(rule.Tags, ", "))
		}
	}
}

func describeEntry(typ string, negated bool, cfg domain.Params) string {
	name := typ
	if negated {
		name = codec.NegationPrefix + typ
	}
	if cfg.Len() == 0 {
		return name
	}
	return name + " (" + formatParams(cfg) + ")"
}

func formatParams(cfg domain.Params) string {
	parts := make([]string, 0, cfg.Len())
	for _, key := range cfg.Keys() {
		v, _ := cfg.Get(key)
		parts = append(parts, key+"="+formatValue(v))
	}
	return strings.Join(parts, ", ")
}

func formatValue(v any) string {
	switch t := v.(type) {
	case []any:
		items := make([]string, len(t))
		for i, item := range t {
			items[i] = formatValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case domain.Params:
		return "{" + formatParams(t) + "}"
	case *domain.Params:
		if t == nil {
			return "null"
		}
		return "{" + formatParams(*t) + "}"
	case nil:
		return "null"
	}
	return fmt.Sprint(v)
}
