package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taxtool/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "taxtool",
	Short: "Tax invoice automation toolkit for the FABi reporting workflow",
	Long: `taxtool automates the tax invoice spreadsheet workflow of a small
restaurant: a web control panel for the upload/fetch scripts, daily
replacement of random invoices with beverage invoices at matching totals,
and reporting/cleanup over the replaced files.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().Str("version", version).Msg("taxtool executed")

		fmt.Println("taxtool - tax invoice automation toolkit")
		fmt.Println("Use --help to see available commands.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
