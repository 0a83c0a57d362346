package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/go-mclib/inventory/pkg/helpers"
	"github.com/go-mclib/inventory/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open an interactive window viewer",
	Long:  `Open the selected archetype in a terminal window viewer. Type "offer <kind> <n>", "poll <kind> <n>", "clear" or "quit".`,
	RunE:  runView,
}

func runView(_ *cobra.Command, _ []string) error {
	s, err := helpers.NewSession(flags, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	program, writer := tui.Start(s.Window, s.Items, flags.MaxLogLines)
	s.Window.Logger = log.New(writer, "", log.LstdFlags)

	_, err = program.Run()
	return err
}
