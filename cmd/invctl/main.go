// Package main is the entry point for the inventory command line tool
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-mclib/inventory/pkg/helpers"
)

var flags helpers.Flags

var rootCmd = &cobra.Command{
	Use:   "invctl",
	Short: "Inspect and exercise inventory archetypes",
	Long:  `invctl lists the registered inventory archetypes, runs a scripted demo against one of them and opens an interactive window viewer.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	helpers.RegisterFlags(rootCmd, &flags)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(viewCmd)
}
