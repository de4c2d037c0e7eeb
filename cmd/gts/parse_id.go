/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/globaltypesystem/gts/gts"
)

var parseIDFlag string

var cmdParseID = &cobra.Command{
	Use:   "parse-id",
	Short: "parse a GTS ID into its components",
	Long: `Parse-id parses a GTS identifier into its component parts.

Example:
  gts parse-id --gts-id gts.vendor.pkg.ns.type.v1.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if parseIDFlag == "" {
			return fmt.Errorf("--gts-id is required")
		}
		return outputJSON(gts.ParseGtsID(parseIDFlag))
	},
}

func init() {
	cmdParseID.Flags().StringVar(&parseIDFlag, "gts-id", "", "GTS ID to parse (required)")
	rootCmd.AddCommand(cmdParseID)
}
