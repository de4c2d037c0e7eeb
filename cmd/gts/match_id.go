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

var (
	matchPattern   string
	matchCandidate string
)

var cmdMatchIDPattern = &cobra.Command{
	Use:   "match-id-pattern",
	Short: "match a GTS ID against a pattern",
	Long: `Match-id-pattern checks whether a GTS identifier matches a pattern.

Example:
  gts match-id-pattern --pattern "gts.vendor.pkg.*" --candidate gts.vendor.pkg.ns.type.v1.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if matchPattern == "" || matchCandidate == "" {
			return fmt.Errorf("--pattern and --candidate are required")
		}
		return outputJSON(gts.MatchIDPattern(matchCandidate, matchPattern))
	},
}

func init() {
	cmdMatchIDPattern.Flags().StringVar(&matchPattern, "pattern", "", "pattern to match against (required)")
	cmdMatchIDPattern.Flags().StringVar(&matchCandidate, "candidate", "", "candidate GTS ID (required)")
	rootCmd.AddCommand(cmdMatchIDPattern)
}
