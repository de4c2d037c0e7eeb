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

var uuidIDFlag string

var cmdUUID = &cobra.Command{
	Use:   "uuid",
	Short: "generate UUID from a GTS ID",
	Long: `UUID generates a deterministic UUID from a GTS identifier.

Example:
  gts uuid --gts-id gts.vendor.pkg.ns.type.v1~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if uuidIDFlag == "" {
			return fmt.Errorf("--gts-id is required")
		}
		return outputJSON(gts.IDToUUID(uuidIDFlag))
	},
}

func init() {
	cmdUUID.Flags().StringVar(&uuidIDFlag, "gts-id", "", "GTS ID (required)")
	rootCmd.AddCommand(cmdUUID)
}
