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
	queryExpr  string
	queryLimit int
)

var cmdQuery = &cobra.Command{
	Use:   "query",
	Short: "query entities using an expression",
	Long: `Query filters entities using a GTS query expression.
Requires --path to be set to load entities.

Example:
  gts --path ./examples query --expr "gts.vendor.pkg.*" --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryExpr == "" {
			return fmt.Errorf("--expr is required")
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		return outputJSON(store.Query(queryExpr, queryLimit))
	},
}

func init() {
	cmdQuery.Flags().StringVar(&queryExpr, "expr", "", "query expression (required)")
	cmdQuery.Flags().IntVar(&queryLimit, "limit", 100, "maximum number of entities to return")
	rootCmd.AddCommand(cmdQuery)
}
