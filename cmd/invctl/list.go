package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/go-mclib/inventory/pkg/inventory"
	"github.com/go-mclib/inventory/pkg/inventory/vanilla"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered archetypes",
	Long:  `List every archetype of the selected plugin with its capacity, title and menu type.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	r := vanilla.NewRegistry()

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("ARCHETYPE", "CAPACITY", "TITLE", "MENU")

	n := 0
	for _, a := range r.All() {
		if a.PluginID() != flags.Plugin {
			continue
		}
		inv := a.Build()
		menu := "-"
		if m, ok := vanilla.MenuTypeOf(a); ok {
			menu = strconv.Itoa(int(m))
		}
		t.Row(a.Key(), strconv.Itoa(inv.Capacity()), inventory.Title(inv), menu)
		n++
	}
	if n == 0 {
		return fmt.Errorf("no archetypes registered for plugin %q", flags.Plugin)
	}

	fmt.Fprintln(cmd.OutOrStdout(), t)
	return nil
}
