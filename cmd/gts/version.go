/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "print GTS version",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Println("gts version unknown")
			return nil
		}

		fmt.Printf("gts version %s\n", info.Main.Version)
		if verbose > 0 {
			fmt.Printf("go version %s\n", info.GoVersion)
			fmt.Printf("path %s\n", info.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cmdVersion)
}
