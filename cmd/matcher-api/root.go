package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "matcher-api",
	Short: "Job matching pipeline API",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
}
