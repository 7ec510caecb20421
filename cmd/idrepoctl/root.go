package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/idrepo/pkg/config"
	"github.com/doodlesbykumbi/idrepo/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "idrepoctl",
	Short: "Identity repository administration",
	Long: `Administer the identity repository: run the admin server, manage the
database schema, delete entities with their cascades and reap expired batches.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitLogger(config.Get().LogLevel)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
