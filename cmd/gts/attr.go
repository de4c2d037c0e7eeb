/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var attrGtsWithPath string

var cmdAttr = &cobra.Command{
	Use:   "attr",
	Short: "get attribute value from a GTS entity",
	Long: `Attr retrieves an attribute value from a GTS entity using path notation.
Requires --path to be set to load entities.

Example:
  gts --path ./examples attr --gts-with-path gts.vendor.pkg.ns.type.v1.0@name`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if attrGtsWithPath == "" {
			return fmt.Errorf("--gts-with-path is required")
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		return outputJSON(store.GetAttribute(attrGtsWithPath))
	},
}

func init() {
	cmdAttr.Flags().StringVar(&attrGtsWithPath, "gts-with-path", "", "GTS ID with attribute path (required)")
	rootCmd.AddCommand(cmdAttr)
}
