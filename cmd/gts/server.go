/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/globaltypesystem/gts/server"
)

var (
	serverHost string
	serverPort int
)

var cmdServer = &cobra.Command{
	Use:   "server",
	Short: "start the GTS HTTP server",
	Long: `Server starts the GTS HTTP server for REST API access.

Example:
  gts --path ./examples server --host 127.0.0.1 --port 8000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}

		fmt.Printf("starting server at http://%s:%d\n", serverHost, serverPort)
		if verbose == 0 {
			fmt.Println("use -v for verbose logging")
		}

		srv := server.NewServer(store, serverHost, serverPort, verbose)
		return srv.Start()
	},
}

func init() {
	cmdServer.Flags().StringVar(&serverHost, "host", "127.0.0.1", "host address")
	cmdServer.Flags().IntVar(&serverPort, "port", 8000, "port number")
	rootCmd.AddCommand(cmdServer)
}
