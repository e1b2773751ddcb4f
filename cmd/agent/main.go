// Package main is the entry point for the game agent
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "botcore",
	Short: "Autonomous game agent decision core",
	Long:  `botcore runs the decision core for an autonomous MMO agent: state snapshots in over a websocket, one action out per tick.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
