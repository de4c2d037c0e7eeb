/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateInstanceID string

var cmdValidate = &cobra.Command{
	Use:   "validate-instance",
	Short: "validate an instance against its schema",
	Long: `Validate-instance checks an instance against its corresponding schema.
Requires --path to be set to load entities.

Example:
  gts --path ./examples validate-instance --gts-id gts.vendor.pkg.ns.type.v1.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateInstanceID == "" {
			return fmt.Errorf("--gts-id is required")
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		return outputJSON(store.ValidateInstance(validateInstanceID))
	},
}

func init() {
	cmdValidate.Flags().StringVar(&validateInstanceID, "gts-id", "", "GTS ID of the instance (required)")
	rootCmd.AddCommand(cmdValidate)
}
