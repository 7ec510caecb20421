package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/idrepo/pkg/audit"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'audit' requires a subcommand (list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audit messages",
	Long: `List recent audit messages, newest first.

Messages are read from IDREPO_AUDIT_DATABASE_URL.

Example:
  idrepoctl audit list
  idrepoctl audit list --msgid delete --limit 50 --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		msgid, _ := cmd.Flags().GetString("msgid")
		limit, _ := cmd.Flags().GetInt("limit")
		output, _ := cmd.Flags().GetString("output")

		store, err := audit.NewStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to open audit database:", err)
			os.Exit(1)
		}
		if store == nil {
			fmt.Fprintln(os.Stderr, "IDREPO_AUDIT_DATABASE_URL is not set")
			os.Exit(1)
		}
		defer store.Close()

		records, err := store.List(context.Background(), msgid, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list audit messages: %v\n", err)
			os.Exit(1)
		}
		if err := listAuditRecords(cmd.OutOrStdout(), output, records); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list audit messages: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd)
	auditListCmd.Flags().String("msgid", "", "Only list messages of this type (delete or reap)")
	auditListCmd.Flags().Int("limit", 20, "Maximum number of messages")
	auditListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func listAuditRecords(w io.Writer, output string, records []audit.Record) error {
	if output == "json" {
		if records == nil {
			records = []audit.Record{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, string(data))
		return nil
	}

	_, _ = fmt.Fprintf(w, "%-24s %-8s %s\n", "TIMESTAMP", "MSGID", "MESSAGE")
	for _, rec := range records {
		_, _ = fmt.Fprintf(w, "%-24s %-8s %s\n", rec.Timestamp.UTC().Format("2006-01-02T15:04:05Z"), rec.Msgid, rec.Message)
	}
	return nil
}
