package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "commerce-api",
	Short: "Fresh grocery commerce backend",
	Long:  `A commerce backend providing customer accounts, catalog, ordering and delivery-area lookups over HTTP.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
