/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

var listLimit int

var cmdList = &cobra.Command{
	Use:   "list",
	Short: "list all entities",
	Long: `List displays all entities in the store.
Requires --path to be set to load entities.

Example:
  gts --path ./examples list --limit 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		return outputJSON(store.List(listLimit))
	},
}

func init() {
	cmdList.Flags().IntVar(&listLimit, "limit", 100, "maximum number of entities to return")
	rootCmd.AddCommand(cmdList)
}
