package cmd

import (
	"github.com/spf13/cobra"

	"mahjong/bootstrap"
	"mahjong/pkg/database"
	"mahjong/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootstrap.SetupDB(true)
		if err != nil {
			return err
		}
		logger.LogIf(database.Close(db))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
