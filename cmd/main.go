package main

import (
	"fmt"
	"os"

	"sharvari-site/internal/shared/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sharvari-site",
	Short: "Sharvari Electricals website and admin dashboard",
	Long: `Serves the public marketing pages of Sharvari Electricals together with
the admin dashboard used to edit them.

Configuration is read from the environment and, when present, a .env file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			logger.Debugf("No .env file loaded: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
