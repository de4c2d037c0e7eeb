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

var validateIDFlag string

var cmdValidateID = &cobra.Command{
	Use:   "validate-id",
	Short: "validate a GTS ID format",
	Long: `Validate-id validates the format of a GTS identifier.

Example:
  gts validate-id --gts-id gts.vendor.pkg.ns.type.v1~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateIDFlag == "" {
			return fmt.Errorf("--gts-id is required")
		}
		return outputJSON(gts.ValidateGtsID(validateIDFlag))
	},
}

func init() {
	cmdValidateID.Flags().StringVar(&validateIDFlag, "gts-id", "", "GTS ID to validate (required)")
	rootCmd.AddCommand(cmdValidateID)
}
