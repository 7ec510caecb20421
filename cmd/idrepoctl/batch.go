package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/idrepo/pkg/audit"
	"github.com/doodlesbykumbi/idrepo/pkg/config"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Manage batches",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'batch' requires a subcommand (reap)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var batchReapCmd = &cobra.Command{
	Use:   "reap",
	Short: "Delete batches whose expiry has passed",
	Run: func(cmd *cobra.Command, args []string) {
		repos, err := openRepositories(config.Get())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		n, err := repos.Batches.DeleteExpired(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reap batches: %v\n", err)
			os.Exit(1)
		}
		audit.DefaultLogger.SetWriter(os.Stderr)
		audit.Log(audit.ReapEvent{ClientIP: "local", Deleted: n})
		fmt.Printf("Deleted %d expired batch(es)\n", n)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.AddCommand(batchReapCmd)
}
