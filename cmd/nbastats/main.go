package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:          "nbastats",
		Short:        "Fetch NBA standings from sportsdata.io",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				return a.fetchAndPrint(cmd.OutOrStdout(), a.config.SportsData.Season)
			})
		},
	}
)

func initCommands() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config")
	rootCmd.AddCommand(makeArchiveCommand())
	rootCmd.AddCommand(makeServeCommand())
}

func init() {
	initCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s\n", err.Error())
		os.Exit(1)
	}
}
