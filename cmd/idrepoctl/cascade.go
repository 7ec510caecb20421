package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	storegorm "github.com/doodlesbykumbi/idrepo/pkg/store/gorm"
)

// cascadeCmd represents the cascade command
var cascadeCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Inspect deletion cascades",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'cascade' requires a subcommand (list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var cascadeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List what deleting each entity does to the entities referring to it",
	Long: `List what deleting each entity does to the entities referring to it.

Steps run in order inside the deletion's transaction. Steps marked
after-commit run only once the transaction has committed.

Example:
  idrepoctl cascade list
  idrepoctl cascade list --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		if err := listCascades(cmd.OutOrStdout(), output, storegorm.Cascades()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list cascades: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(cascadeCmd)
	cascadeCmd.AddCommand(cascadeListCmd)
	cascadeListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func listCascades(w io.Writer, output string, rows []cascade.Spec) error {
	if output == "json" {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, string(data))
		return nil
	}

	_, _ = fmt.Fprintf(w, "%-20s %-4s %-26s %-22s %-18s %s\n", "ROOT", "STEP", "NAME", "REFERENCER", "MUTATION", "WHEN")
	for _, row := range rows {
		when := "in transaction"
		if row.AfterCommit {
			when = "after commit"
		}
		_, _ = fmt.Fprintf(w, "%-20s %-4d %-26s %-22s %-18s %s\n", row.Root, row.Step, row.Name, row.Referencer, row.Mutation, when)
	}
	return nil
}
