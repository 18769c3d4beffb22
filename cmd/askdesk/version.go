package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askdeskhq/askdesk"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of askdesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("askdesk version %s\n", askdesk.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
