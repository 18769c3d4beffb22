package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askdeskhq/askdesk/internal/cli"
)

// boardCmd represents the interactive board session.
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Run the interactive inquiry board",
	Long:  `Starts the board in the terminal. Visitors browse and post inquiries; 'admin' unlocks operator mode when an operator token is configured.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		store, closeStore, err := openStore(cfg)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		debug, _ := cmd.Flags().GetBool("debug")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		err = cli.RunBoard(sigCtx, cli.BoardOptions{
			Store:          store,
			OperatorSecret: cfg.OperatorToken,
			Debug:          debug,
			In:             os.Stdin,
			Out:            os.Stdout,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().Bool("debug", false, "Log engine activity to stderr")

	// Running askdesk with no subcommand starts the board.
	rootCmd.Run = boardCmd.Run
}
