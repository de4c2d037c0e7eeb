/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var relationshipsID string

var cmdRelationships = &cobra.Command{
	Use:   "resolve-relationships",
	Short: "resolve relationships for an entity",
	Long: `Resolve-relationships builds a graph of schema relationships for an entity.
Requires --path to be set to load entities.

Example:
  gts --path ./examples resolve-relationships --gts-id gts.vendor.pkg.ns.type.v1~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if relationshipsID == "" {
			return fmt.Errorf("--gts-id is required")
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		return outputJSON(store.BuildSchemaGraph(relationshipsID))
	},
}

func init() {
	cmdRelationships.Flags().StringVar(&relationshipsID, "gts-id", "", "GTS ID of the entity (required)")
	rootCmd.AddCommand(cmdRelationships)
}
