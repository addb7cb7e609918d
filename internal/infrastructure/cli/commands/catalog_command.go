package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/organize-desk/internal/catalog"
	"github.com/doeshing/organize-desk/internal/codec"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/cli/helpers"
)

// NewCatalogCommand creates the catalog command with all subcommands
func NewCatalogCommand() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the known filter and action types",
	}

	catalogCmd.AddCommand(
		&cobra.Command{
			Use:   "filters",
			Short: "List filter types",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				listDefinitions(cmd.OutOrStdout(), catalog.Filters())
				return nil
			},
		},
		&cobra.Command{
			Use:   "actions",
			Short: "List action types",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				listDefinitions(cmd.OutOrStdout(), catalog.Actions())
				return nil
			},
		},
		newCatalogShowCommand(),
	)

	return catalogCmd
}

func listDefinitions(out io.Writer, defs []domain.Definition) {
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{d.Name, supportLabel(d), d.Description})
	}
	fmt.Fprint(out, helpers.FormatTable([]string{"TYPE", "TARGETS", "DESCRIPTION"}, rows))
}

func supportLabel(d domain.Definition) string {
	switch {
	case d.SupportsFiles && d.SupportsDirs:
		return "files,dirs"
	case d.SupportsDirs:
		return "dirs"
	default:
		return "files"
	}
}

func newCatalogShowCommand() *cobra.Command {
	var action bool

	cmd := &cobra.Command{
		Use:   "show <type>",
		Short: "Show the properties of a filter or action type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.KindFilter
			if action {
				kind = domain.KindAction
			}
			def, err := catalog.Require(kind, args[0])
			if err != nil {
				return err
			}
			displayDefinition(cmd.OutOrStdout(), def)
			return nil
		},
	}

	cmd.Flags().BoolVar(&action, "action", false, "Look up an action instead of a filter")
	return cmd
}

func displayDefinition(out io.Writer, def domain.Definition) {
	p := helpers.NewPrinter(out)
	p.Println(p.Header(fmt.Sprintf("%s (%s)", def.Label, def.Name)))
	p.Println(def.Description)
	p.Printf("Targets: %s\n", supportLabel(def))
	if key, ok := codec.ShorthandKey(def.Kind, def.Name); ok {
		p.Printf("Shorthand: %s: <%s>\n", def.Name, key)
	}
	if len(def.Properties) == 0 {
		p.Println(p.Dim("No properties."))
		return
	}

	rows := make([][]string, 0, len(def.Properties))
	for _, prop := range def.Properties {
		rows = append(rows, []string{prop.Name, propertyKind(prop), requiredLabel(prop.Required), defaultLabel(prop.Default), prop.Description})
	}
	p.Println()
	fmt.Fprint(out, helpers.FormatTable([]string{"PROPERTY", "KIND", "REQUIRED", "DEFAULT", "DESCRIPTION"}, rows))
}

func propertyKind(prop domain.Property) string {
	if prop.Kind != domain.PropertySelect || len(prop.Options) == 0 {
		return string(prop.Kind)
	}
	values := make([]string, len(prop.Options))
	for i, o := range prop.Options {
		values[i] = o.Value
	}
	return strings.Join(values, "|")
}

func requiredLabel(required bool) string {
	if required {
		return "yes"
	}
	return ""
}

func defaultLabel(v any) string {
	if v == nil {
		return ""
	}
	return formatValue(v)
}
