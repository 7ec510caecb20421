package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/idrepo/pkg/audit"
	"github.com/doodlesbykumbi/idrepo/pkg/config"
	storegorm "github.com/doodlesbykumbi/idrepo/pkg/store/gorm"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <collection> <key>",
	Short: "Delete an entity and run its cascade",
	Long: fmt.Sprintf(`Delete an entity and run its cascade.

Entities referring to the deleted one are updated in the same transaction.
Deleting a key that does not exist succeeds without changes.

Collections: %s

Example:
  idrepoctl delete applications billing
  idrepoctl delete security-questions first-pet`, strings.Join(storegorm.Collections(), ", ")),
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repos, err := openRepositories(config.Get())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		err = repos.DeleteFrom(context.Background(), args[0], args[1])
		event := audit.DeleteEvent{Collection: args[0], Key: args[1], ClientIP: "local", Success: err == nil}
		if err != nil {
			event.ErrorMessage = err.Error()
		}
		audit.DefaultLogger.SetWriter(os.Stderr)
		audit.Log(event)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete %s %s: %v\n", args[0], args[1], err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %s %s\n", args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
