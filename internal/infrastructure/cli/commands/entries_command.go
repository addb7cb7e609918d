package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/application/document"
	"github.com/doeshing/organize-desk/internal/catalog"
	"github.com/doeshing/organize-desk/internal/codec"
	"github.com/doeshing/organize-desk/internal/domain"
)

// NewFiltersCommand creates the filters command with all subcommands
func NewFiltersCommand(container *app.Container) *cobra.Command {
	filtersCmd := &cobra.Command{
		Use:   "filters",
		Short: "Edit the filters of a rule",
	}

	filtersCmd.AddCommand(
		newEntryAddCommand(container, domain.KindFilter),
		newEntryRemoveCommand(container, domain.KindFilter),
		newFilterNegateCommand(container),
	)

	return filtersCmd
}

// NewActionsCommand creates the actions command with all subcommands
func NewActionsCommand(container *app.Container) *cobra.Command {
	actionsCmd := &cobra.Command{
		Use:   "actions",
		Short: "Edit the actions of a rule",
	}

	actionsCmd.AddCommand(
		newEntryAddCommand(container, domain.KindAction),
		newEntryRemoveCommand(container, domain.KindAction),
		newActionMoveCommand(container),
	)

	return actionsCmd
}

func newEntryAddCommand(container *app.Container, kind domain.DefinitionKind) *cobra.Command {
	var (
		sets    []string
		negate  bool
		unknown bool
	)

	cmd := &cobra.Command{
		Use:   "add <file> <rule> <type>",
		Short: fmt.Sprintf("Append a %s to a rule", kind),
		Example: map[domain.DefinitionKind]string{
			domain.KindFilter: "  organize-desk filters add organize.yaml 1 extension --set extensions=[pdf,docx]",
			domain.KindAction: "  organize-desk actions add organize.yaml 1 move --set dest=~/Documents/",
		}[kind],
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := args[2]
			if _, err := catalog.Require(kind, typ); err != nil && !unknown {
				return fmt.Errorf("%w (use --allow-unknown to add it anyway)", err)
			}
			params, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			return editAndSave(cmd, container, args[0], func(s *document.Session) (string, error) {
				rule, err := ruleAt(s, args[1])
				if err != nil {
					return "", err
				}
				if kind == domain.KindFilter {
					f := codec.NewFilter(typ)
					f.Config = params
					f.Negated = negate
					rule.AddFilter(f)
				} else {
					a := codec.NewAction(typ)
					a.Config = params
					rule.AddAction(a)
				}
				if err := s.UpdateRule(rule.ID, rule); err != nil {
					return "", err
				}
				return fmt.Sprintf("Added %s %s to rule %s", kind, typ, args[1]), nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a property as key=value; value is parsed as YAML (repeatable)")
	cmd.Flags().BoolVar(&unknown, "allow-unknown", false, "Allow types that are not in the catalog")
	if kind == domain.KindFilter {
		cmd.Flags().BoolVar(&negate, "not", false, "Negate the filter")
	}
	return cmd
}

func newEntryRemoveCommand(container *app.Container, kind domain.DefinitionKind) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file> <rule> <position>",
		Short: fmt.Sprintf("Remove a %s from a rule", kind),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAndSave(cmd, container, args[0], func(s *document.Session) (string, error) {
				rule, err := ruleAt(s, args[1])
				if err != nil {
					return "", err
				}
				if kind == domain.KindFilter {
					i, err := parsePosition(args[2], len(rule.Filters), "filter")
					if err != nil {
						return "", err
					}
					err = s.RemoveFilter(rule.ID, rule.Filters[i].ID)
					return fmt.Sprintf("Removed filter %s from rule %s", args[2], args[1]), err
				}
				i, err := parsePosition(args[2], len(rule.Actions), "action")
				if err != nil {
					return "", err
				}
				err = s.RemoveAction(rule.ID, rule.Actions[i].ID)
				return fmt.Sprintf("Removed action %s from rule %s", args[2], args[1]), err
			})
		},
	}
}

func newFilterNegateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "negate <file> <rule> <position>",
		Short: "Toggle the negation of a filter",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAndSave(cmd, container, args[0], func(s *document.Session) (string, error) {
				rule, err := ruleAt(s, args[1])
				if err != nil {
					return "", err
				}
				i, err := parsePosition(args[2], len(rule.Filters), "filter")
				if err != nil {
					return "", err
				}
				negated, err := s.ToggleNegation(rule.ID, rule.Filters[i].ID)
				if err != nil {
					return "", err
				}
				state := "no longer negated"
				if negated {
					state = "negated"
				}
				return fmt.Sprintf("Filter %s (%s) is %s", args[2], rule.Filters[i].Type, state), nil
			})
		},
	}
}

func newActionMoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "move <file> <rule> <from> <to>",
		Short: "Reorder the actions of a rule",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editAndSave(cmd, container, args[0], func(s *document.Session) (string, error) {
				rule, err := ruleAt(s, args[1])
				if err != nil {
					return "", err
				}
				from, err := parsePosition(args[2], len(rule.Actions), "action")
				if err != nil {
					return "", err
				}
				to, err := parsePosition(args[3], len(rule.Actions), "action")
				if err != nil {
					return "", err
				}
				if err := s.MoveAction(rule.ID, from, to); err != nil {
					return "", err
				}
				return fmt.Sprintf("Moved action %d to position %d", from+1, to+1), nil
			})
		},
	}
}
