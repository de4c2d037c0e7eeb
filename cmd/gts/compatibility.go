/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	compatOld string
	compatNew string
)

var cmdCompatibility = &cobra.Command{
	Use:   "compatibility",
	Short: "check compatibility between two schemas",
	Long: `Compatibility checks whether two schema versions are compatible.
Requires --path to be set to load entities.

Example:
  gts --path ./examples compatibility --old-schema-id gts.vendor.pkg.ns.type.v1~ --new-schema-id gts.vendor.pkg.ns.type.v2~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if compatOld == "" || compatNew == "" {
			return fmt.Errorf("--old-schema-id and --new-schema-id are required")
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		return outputJSON(store.CheckCompatibility(compatOld, compatNew))
	},
}

func init() {
	cmdCompatibility.Flags().StringVar(&compatOld, "old-schema-id", "", "GTS ID of old schema (required)")
	cmdCompatibility.Flags().StringVar(&compatNew, "new-schema-id", "", "GTS ID of new schema (required)")
	rootCmd.AddCommand(cmdCompatibility)
}
