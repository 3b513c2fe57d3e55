package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Folio is a personal portfolio web service",
	Long: `A personal portfolio backend serving public content, visitor
submissions, and a cookie-authenticated admin surface.
Complete documentation is available at https://github.com/jmcleod/folio`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
