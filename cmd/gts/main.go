/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

// Command gts is the GTS helpers CLI: identifier parsing/validation,
// registry loading, instance validation, schema compatibility, casting,
// querying and the HTTP server, all driven through the gts facade.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose   int
	cfgPath   string
	storePath string
)

var rootCmd = &cobra.Command{
	Use:           "gts",
	Short:         "GTS helpers CLI",
	Long:          `gts parses, validates, and queries Global Type System identifiers and entities.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbose, "verbose", "v", "verbosity level (repeat for more detail)")
	flags.StringVar(&cfgPath, "config", "", "path to an optional GTS config YAML override")
	flags.StringVar(&storePath, "path", "", "comma-separated paths to JSON/schema files or directories")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gts: %v\n", err)
		os.Exit(1)
	}
}
