package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/application/document"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
)

// NewRulesCommand creates the rules command with all subcommands
func NewRulesCommand(container *app.Container) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List and edit the rules of a config",
	}

	rulesCmd.AddCommand(
		newRulesListCommand(container),
		newRulesAddCommand(container),
		newRulesRemoveCommand(container),
		newRulesMoveCommand(container),
		newRulesDuplicateCommand(container),
		newRulesEnableCommand(container, true),
		newRulesEnableCommand(container, false),
	)

	return rulesCmd
}

func newRulesListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List rules as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd.Context(), container, args[0])
			if err != nil {
				return err
			}
			listRules(cmd.OutOrStdout(), session.Config())
			return nil
		},
	}
}

func listRules(out io.Writer, cfg domain.Config) {
	if len(cfg.Rules) == 0 {
		fmt.Fprintln(out, "No rules.")
		return
	}
	rows := make([][]string, 0, len(cfg.Rules))
	for i, r := range cfg.Rules {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			ruleName(r),
			strconv.FormatBool(r.Enabled),
			string(r.EffectiveTargets()),
			strconv.Itoa(len(r.Locations)),
			strconv.Itoa(len(r.Filters)),
			strconv.Itoa(len(r.Actions)),
			strings.Join(r.Tags, ","),
		})
	}
	fmt.Fprint(out, helpers.FormatTable([]string{"#", "NAME", "ENABLED", "TARGETS", "LOCATIONS", "FILTERS", "ACTIONS", "TAGS"}, rows))
}

func newRulesAddCommand(container *app.Container) *cobra.Command {
	var (
		name     string
		location string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Append a new rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAndSave(cmd, container, args[0], func(s *document.Session) (string, error) {
				rule, err := s.AddRule()
				if err != nil {
					return "", err
				}
				if name != "" {
					rule.Name = name
				}
				if location != "" {
					rule.Locations = []domain.Location{{Path: location}}
				}
				for _, tag := range tags {
					rule.AddTag(tag)
				}
				if err := s.UpdateRule(rule.ID, rule); err != nil {
					return "", err
				}
				return fmt.Sprintf("Added rule %d: %s", len(s.Config().Rules), ruleName(rule)), nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Rule name (default \"New Rule\")")
	cmd.Flags().StringVar(&location, "location", "", "Location path (default ~/Downloads)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag to add (repeatable)")
	return cmd
}

func newRulesRemoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file> <rule>",
		Short: "Remove a rule by position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAndSave(cmd, container, args[0], func(s *document.Session) (string, error) {
				rule, err := ruleAt(s, args[1])
				if err != nil {
					return "", err
				}
				if err := s.DeleteRule(rule.ID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Removed rule %s: %s", args[1], ruleName(rule)), nil
			})
		},
	}
}

func newRulesMoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "move <file> <from> <to>",
		Short: "Move a rule to another position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAndSave(cmd, container, args[0], func(s *document.Session) (string, error) {
				count := len(s.Config().Rules)
				from, err := parsePosition(args[1], count, "rule")
				if err != nil {
					return "", err
				}
				to, err := parsePosition(args[2], count, "rule")
				if err != nil {
					return "", err
				}
				if err := s.MoveRule(from, to); err != nil {
					return "", err
				}
				return fmt.Sprintf("Moved rule %d to position %d", from+1, to+1), nil
			})
		},
	}
}

func newRulesDuplicateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <file> <rule>",
		Short: "Insert a copy of a rule right after it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAndSave(cmd, container, args[0], func(s *document.Session) (string, error) {
				rule, err := ruleAt(s, args[1])
				if err != nil {
					return "", err
				}
				dup, err := s.DuplicateRule(rule.ID)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added %s", dup.Name), nil
			})
		},
	}
}

func newRulesEnableCommand(container *app.Container, enabled bool) *cobra.Command {
	use, short := "enable", "Enable a rule"
	if !enabled {
		use, short = "disable", "Disable a rule"
	}
	return &cobra.Command{
		Use:   use + " <file> <rule>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAndSave(cmd, container, args[0], func(s *document.Session) (string, error) {
				rule, err := ruleAt(s, args[1])
				if err != nil {
					return "", err
				}
				rule.Enabled = enabled
				if err := s.UpdateRule(rule.ID, rule); err != nil {
					return "", err
				}
				return fmt.Sprintf("Rule %s %sd", args[1], use), nil
			})
		},
	}
}

// editAndSave opens path, applies edit and writes the file back.
func editAndSave(cmd *cobra.Command, container *app.Container, path string, edit func(*document.Session) (string, error)) error {
	session, err := openSession(cmd.Context(), container, path)
	if err != nil {
		return err
	}
	msg, err := edit(session)
	if err != nil {
		return err
	}
	if err := session.Save(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
