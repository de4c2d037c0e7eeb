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
	castFrom string
	castTo   string
)

var cmdCast = &cobra.Command{
	Use:   "cast",
	Short: "cast an instance to a target schema",
	Long: `Cast transforms an instance to conform to a target schema version.
Requires --path to be set to load entities.

Example:
  gts --path ./examples cast --from-id gts.vendor.pkg.ns.type.v1.0 --to-schema-id gts.vendor.pkg.ns.type.v2~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if castFrom == "" || castTo == "" {
			return fmt.Errorf("--from-id and --to-schema-id are required")
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		result, err := store.Cast(castFrom, castTo)
		if err != nil {
			return fmt.Errorf("cast failed: %w", err)
		}
		return outputJSON(result)
	},
}

func init() {
	cmdCast.Flags().StringVar(&castFrom, "from-id", "", "GTS ID of instance to be casted (required)")
	cmdCast.Flags().StringVar(&castTo, "to-schema-id", "", "GTS ID of target schema (required)")
	rootCmd.AddCommand(cmdCast)
}
